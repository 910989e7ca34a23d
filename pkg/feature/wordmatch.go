package feature

import (
	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
	"qpfeat/pkg/text"
)

// minTotal guards the ratios below against an empty or weightless denominator.
const minTotal = 1e-6

// WordMatchShare is the double-counted overlap ratio of the distinct non-stopword words of
// two questions: every shared word counts once from each side and the sum is divided by the
// vocabulary size of both sides. It is not the Jaccard index.
func WordMatchShare(q1, q2 string, stops text.Set) float64 {
	a := text.Unique(text.Tokenize(q1), stops)
	b := text.Unique(text.Tokenize(q2), stops)
	if len(a) == 0 || len(b) == 0 {
		// questions made only of stopwords
		return 0
	}
	sharedInA, sharedInB := 0, 0
	for w := range a {
		if b.Contains(w) {
			sharedInA++
		}
	}
	for w := range b {
		if a.Contains(w) {
			sharedInB++
		}
	}
	return float64(sharedInA+sharedInB) / float64(len(a)+len(b))
}

// TFIDFWordMatchShare is WordMatchShare with every distinct word weighted by a
// CountWeights table.
func TFIDFWordMatchShare(q1, q2 string, stops text.Set, weights *model.WeightTable) float64 {
	a := text.Count(text.Tokenize(q1), stops)
	b := text.Count(text.Tokenize(q2), stops)
	if len(a.Keys) == 0 || len(b.Keys) == 0 {
		return 0
	}
	shared, total := 0.0, 0.0
	for _, w := range a.Keys {
		if b.Contains(w) {
			shared += weights.Weight(w)
		}
	}
	for _, w := range b.Keys {
		if a.Contains(w) {
			shared += weights.Weight(w)
		}
	}
	for _, w := range a.Keys {
		total += weights.Weight(w)
	}
	for _, w := range b.Keys {
		total += weights.Weight(w)
	}
	if total < minTotal {
		return 0
	}
	return shared / total
}

// MyWordMatchShare is the multiset variant of WordMatchShare: shared words count with
// their multiplicity and the denominator is the number of non-stopword tokens.
func MyWordMatchShare(q1, q2 string, stops text.Set) float64 {
	a := text.Count(text.Tokenize(q1), stops)
	b := text.Count(text.Tokenize(q2), stops)
	shared := 0
	for _, w := range a.Keys {
		if b.Contains(w) {
			shared += a.Counts[w]
		}
	}
	for _, w := range b.Keys {
		if a.Contains(w) {
			shared += b.Counts[w]
		}
	}
	total := float64(a.Total() + b.Total())
	if total < minTotal {
		return 0
	}
	return float64(shared) / total
}

// MyTFIDFWordMatchShare weights every token, stopwords included, by its idf and returns
// the idf mass of the shared words over the idf mass of both questions.
func MyTFIDFWordMatchShare(q1, q2 string, idf *model.WeightTable) float64 {
	a := text.Count(text.Tokenize(q1), nil)
	b := text.Count(text.Tokenize(q2), nil)
	shared, total := 0.0, 0.0
	for _, w := range a.Keys {
		if b.Contains(w) {
			shared += float64(a.Counts[w]) * idf.Weight(w)
		}
	}
	for _, w := range b.Keys {
		if a.Contains(w) {
			shared += float64(b.Counts[w]) * idf.Weight(w)
		}
	}
	for _, w := range a.Keys {
		total += float64(a.Counts[w]) * idf.Weight(w)
	}
	for _, w := range b.Keys {
		total += float64(b.Counts[w]) * idf.Weight(w)
	}
	if total < minTotal {
		return 0
	}
	return shared / total
}

// Vector is the feature vector of one row.
type Vector []float64

// Func maps a row to its feature vector.
type Func func(p *io.Pair) Vector

func NewWordMatchShare(stops text.Set) Func {
	return func(p *io.Pair) Vector {
		return Vector{WordMatchShare(p.Question1, p.Question2, stops)}
	}
}

func NewTFIDFWordMatchShare(stops text.Set, weights *model.WeightTable) Func {
	return func(p *io.Pair) Vector {
		return Vector{TFIDFWordMatchShare(p.Question1, p.Question2, stops, weights)}
	}
}

func NewMyWordMatchShare(stops text.Set) Func {
	return func(p *io.Pair) Vector {
		return Vector{MyWordMatchShare(p.Question1, p.Question2, stops)}
	}
}

func NewMyTFIDFWordMatchShare(idf *model.WeightTable) Func {
	return func(p *io.Pair) Vector {
		return Vector{MyTFIDFWordMatchShare(p.Question1, p.Question2, idf)}
	}
}
