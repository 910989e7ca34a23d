package feature

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
	"qpfeat/pkg/text"
)

func TestLookup(t *testing.T) {
	all, err := Lookup(AllFeatures)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, []string{
		"word_match_share", "tfidf_word_match_share", "my_word_match_share", "my_tfidf_word_match_share",
	}, Names())

	one, err := Lookup("my_word_match_share")
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.False(t, one[0].Weighted)

	_, err = Lookup("jaccard")
	require.ErrorIs(t, err, ErrUnknownFeature)
}

func TestExtractorsFitAndScore(t *testing.T) {
	train := io.NewDataSet([]*io.Pair{
		{Qid1: "1", Qid2: "2", Question1: "how do i learn go", Question2: "how can i learn go", Label: 1, Labeled: true},
		{Qid1: "3", Qid2: "1", Question1: "what is rust", Question2: "how do i learn go", Label: 0, Labeled: true},
	}, 1)
	test := io.NewDataSet([]*io.Pair{
		{Question1: "learn go", Question2: "learn rust"},
		{Question1: "", Question2: ""},
		{Question1: "unseen words", Question2: "unseen words"},
	}, 2)
	corpus := Corpus{Train: train, Questions: train.UniqueQuestions(), CountWeights: model.DefaultCountWeightParameters()}

	for _, e := range extractors {
		t.Run(e.Name, func(t *testing.T) {
			require.Equal(t, e.Weighted, e.Fit != nil)
			var table *model.WeightTable
			if e.Weighted {
				var err error
				table, err = e.Fit(corpus)
				require.NoError(t, err)
				require.NotNil(t, table)
			}

			f := e.Bind(text.English(), table)
			for _, ds := range []*io.DataSet{train, test} {
				m, err := Apply(context.Background(), ds, f, 2)
				require.NoError(t, err)
				rows, cols := m.Dims()
				require.Equal(t, ds.Size(), rows)
				require.Equal(t, 1, cols)
				for i := 0; i < rows; i++ {
					v := m.At(i, 0)
					require.True(t, v >= 0 && v <= 1, "%s row %d: %f", e.Name, i, v)
				}
			}
		})
	}
}

func TestMyTFIDFFitsOnUniqueQuestions(t *testing.T) {
	train := io.NewDataSet([]*io.Pair{
		{Qid1: "1", Qid2: "2", Question1: "foo bar", Question2: "bar baz"},
		{Qid1: "1", Qid2: "3", Question1: "foo bar", Question2: "qux"},
	}, 1)
	all, err := Lookup("my_tfidf_word_match_share")
	require.NoError(t, err)
	table, err := all[0].Fit(Corpus{Train: train, Questions: train.UniqueQuestions()})
	require.NoError(t, err)
	require.Equal(t, 3, table.Documents)

	_, err = all[0].Fit(Corpus{Train: train, Questions: []string{}})
	require.ErrorIs(t, err, model.ErrEmptyCorpus)

	table, err = all[0].Fit(Corpus{Train: train, Questions: []string{"foo", "bar", "baz", "qux"}})
	require.NoError(t, err)
	require.Equal(t, 4, table.Documents)
	require.InDelta(t, 1.0, table.Weight("foo"), 1e-12)
}
