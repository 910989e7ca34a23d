package model

import (
	"errors"
	"math"

	"qpfeat/pkg/text"
)

// ErrEmptyCorpus is returned when a weight table is fitted on no text.
var ErrEmptyCorpus = errors.New("corpus is empty")

type WeightKind int

const (
	// CountWeights holds smoothed inverse term counts, see CalWeight.
	CountWeights WeightKind = iota
	// IDFWeights holds log2 inverse document frequencies.
	IDFWeights
)

func (k WeightKind) String() string {
	switch k {
	case CountWeights:
		return "count"
	case IDFWeights:
		return "idf"
	default:
		return "unknown"
	}
}

// WeightTable maps words to non-negative weights. It is built once by FitCountWeights
// or FitIDF and only read afterwards.
type WeightTable struct {
	Kind WeightKind
	// Documents is the number of texts the table was fitted on
	Documents int
	Weights   map[string]float64
}

// Weight returns the weight of word, 0 for words the table has never seen.
func (t *WeightTable) Weight(word string) float64 {
	return t.Weights[word]
}

func (t *WeightTable) Size() int {
	return len(t.Weights)
}

// Scale returns a copy of the table with every weight multiplied by factor.
func (t *WeightTable) Scale(factor float64) *WeightTable {
	scaled := &WeightTable{Kind: t.Kind, Documents: t.Documents, Weights: make(map[string]float64, len(t.Weights))}
	for word, w := range t.Weights {
		scaled.Weights[word] = w * factor
	}
	return scaled
}

type CountWeightParameters struct {
	Eps      float64
	MinCount int
}

func DefaultCountWeightParameters() CountWeightParameters {
	return CountWeightParameters{Eps: 10000, MinCount: 2}
}

// CalWeight turns a global term count into a weight: rare words (below MinCount) get 0,
// the rest 1/(count+Eps).
func CalWeight(count int, p CountWeightParameters) float64 {
	if count < p.MinCount {
		return 0
	}
	return 1.0 / (float64(count) + p.Eps)
}

// FitCountWeights counts every token of every question, stopwords included, and derives
// a CountWeights table.
func FitCountWeights(questions []string, p CountWeightParameters) (*WeightTable, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCorpus
	}
	counts := map[string]int{}
	for _, q := range questions {
		for _, token := range text.Tokenize(q) {
			counts[token]++
		}
	}
	table := &WeightTable{Kind: CountWeights, Documents: len(questions), Weights: make(map[string]float64, len(counts))}
	for word, count := range counts {
		table.Weights[word] = CalWeight(count, p)
	}
	return table, nil
}

// FitIDF computes idf(w) = log2(N/(df(w)+1)) over a corpus of unique questions, stopwords
// included.
func FitIDF(questions []string) (*WeightTable, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCorpus
	}
	df := map[string]int{}
	for _, q := range questions {
		for word := range text.Unique(text.Tokenize(q), nil) {
			df[word]++
		}
	}
	numDocs := float64(len(questions))
	table := &WeightTable{Kind: IDFWeights, Documents: len(questions), Weights: make(map[string]float64, len(df))}
	for word, freq := range df {
		table.Weights[word] = math.Log2(numDocs / (float64(freq) + 1))
	}
	return table, nil
}
