package feature

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
	"qpfeat/pkg/text"
)

var ErrUnknownFeature = errors.New("unknown feature")

// AllFeatures selects every registered extractor.
const AllFeatures = "all"

// Corpus is what an extractor may fit its statistics on. It never holds test data.
type Corpus struct {
	Train *io.DataSet
	// Questions is the deduplicated question corpus the IDF is fitted on
	Questions    []string
	CountWeights model.CountWeightParameters
}

// Extractor is a named feature. Fit builds the corpus statistics of Weighted extractors
// and is nil for the others. Bind turns the fitted table into the row mapping.
type Extractor struct {
	Name string
	// Weighted extractors need a fitted table before Bind
	Weighted bool
	Fit      func(c Corpus) (*model.WeightTable, error)
	Bind     func(stops text.Set, table *model.WeightTable) Func
}

var extractors = []Extractor{
	{
		Name: "word_match_share",
		Bind: func(stops text.Set, _ *model.WeightTable) Func {
			return NewWordMatchShare(stops)
		},
	},
	{
		Name:     "tfidf_word_match_share",
		Weighted: true,
		Fit: func(c Corpus) (*model.WeightTable, error) {
			return model.FitCountWeights(c.Train.Questions(), c.CountWeights)
		},
		Bind: NewTFIDFWordMatchShare,
	},
	{
		Name: "my_word_match_share",
		Bind: func(stops text.Set, _ *model.WeightTable) Func {
			return NewMyWordMatchShare(stops)
		},
	},
	{
		Name:     "my_tfidf_word_match_share",
		Weighted: true,
		Fit: func(c Corpus) (*model.WeightTable, error) {
			return model.FitIDF(c.Questions)
		},
		Bind: func(_ text.Set, table *model.WeightTable) Func {
			return NewMyTFIDFWordMatchShare(table)
		},
	},
}

// Names lists the registered extractors.
func Names() []string {
	return lo.Map(extractors, func(e Extractor, _ int) string {
		return e.Name
	})
}

// Lookup returns the extractors selected by name, or all of them for AllFeatures.
func Lookup(name string) ([]Extractor, error) {
	if name == AllFeatures {
		return extractors, nil
	}
	e, ok := lo.Find(extractors, func(e Extractor) bool {
		return e.Name == name
	})
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %v or %s", ErrUnknownFeature, name, Names(), AllFeatures)
	}
	return []Extractor{e}, nil
}
