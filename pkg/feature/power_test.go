package feature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
)

func powerPairs() []*io.Pair {
	var pairs []*io.Pair
	for i := 0; i < 10; i++ {
		pairs = append(pairs, &io.Pair{
			Question1: fmt.Sprintf("bar x%d", i),
			Question2: fmt.Sprintf("y%d", i),
			Label:     0,
			Labeled:   true,
		})
	}
	pairs = append(pairs,
		&io.Pair{Question1: "foo baz", Question2: "Foo qux", Label: 1, Labeled: true},
		&io.Pair{Question1: "foo", Question2: "zap", Label: 1, Labeled: true},
	)
	return pairs
}

func TestCalWordPower(t *testing.T) {
	records, err := CalWordPower(io.NewDataSet(powerPairs(), 4))
	require.NoError(t, err)

	bar := records[0]
	require.Equal(t, "bar", bar.Word)
	require.Equal(t, 10.0, bar.Stats[model.OccurrenceCount])
	require.InDelta(t, 10.0/12.0, bar.Stats[model.OccurrenceRatio], 1e-12)
	require.Equal(t, 1.0, bar.Stats[model.CorrectRatio])
	require.Equal(t, 1.0, bar.Stats[model.OneSideCountRatio])
	require.Equal(t, 1.0, bar.Stats[model.OneSideCorrectRatio])
	require.Equal(t, 0.0, bar.Stats[model.BothSideCountRatio])
	require.Equal(t, 0.0, bar.Stats[model.BothSideCorrectRatio])

	foo := records[1]
	require.Equal(t, "foo", foo.Word)
	require.Equal(t, [model.WordPowerSize]float64{2, 2.0 / 12.0, 0.5, 0.5, 0, 0.5, 1}, foo.Stats)

	// ties keep first occurrence order
	require.Equal(t, "x0", records[2].Word)
	require.Equal(t, "y0", records[3].Word)
	require.Equal(t, "zap", records[len(records)-1].Word)

	for _, r := range records {
		require.InDelta(t, 1.0, r.Stats[model.OneSideCountRatio]+r.Stats[model.BothSideCountRatio], 1e-12, r.Word)
	}
}

func TestCalWordPowerSubset(t *testing.T) {
	pairs := powerPairs()
	subset, err := io.NewDataSetSplit(pairs, 4, []int{10, 10, 0})
	require.NoError(t, err)
	records, err := CalWordPower(subset)
	require.NoError(t, err)

	require.Equal(t, "foo", records[0].Word)
	require.Equal(t, 2.0, records[0].Stats[model.OccurrenceCount])
	require.InDelta(t, 2.0/3.0, records[0].Stats[model.OccurrenceRatio], 1e-12)
	require.Equal(t, 1.0, records[0].Stats[model.BothSideCountRatio])
}

func TestCalWordPowerErrors(t *testing.T) {
	_, err := CalWordPower(io.NewDataSet(nil, 1))
	require.ErrorIs(t, err, ErrNoData)

	_, err = CalWordPower(io.NewDataSet([]*io.Pair{{Question1: "a", Question2: "b"}}, 1))
	require.ErrorIs(t, err, io.ErrUnlabeled)

	_, err = CalWordPower(io.NewDataSet([]*io.Pair{{Question1: "a", Question2: "b", Label: 2, Labeled: true}}, 1))
	require.Error(t, err)
}
