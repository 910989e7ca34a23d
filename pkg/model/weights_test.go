package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalWeight(t *testing.T) {
	p := DefaultCountWeightParameters()
	require.Equal(t, 0.0, CalWeight(0, p))
	require.Equal(t, 0.0, CalWeight(1, p))
	require.InDelta(t, 1.0/10002.0, CalWeight(2, p), 1e-15)
	require.InDelta(t, 1.0/10100.0, CalWeight(100, p), 1e-15)
}

func TestFitCountWeights(t *testing.T) {
	table, err := FitCountWeights([]string{"How do I learn Go", "how to learn python"}, DefaultCountWeightParameters())
	require.NoError(t, err)
	require.Equal(t, CountWeights, table.Kind)
	require.Equal(t, 2, table.Documents)
	require.InDelta(t, 1.0/10002.0, table.Weight("how"), 1e-15)
	require.InDelta(t, 1.0/10002.0, table.Weight("learn"), 1e-15)
	require.Equal(t, 0.0, table.Weight("python"))
	require.Equal(t, 0.0, table.Weight("never-seen"))
	// how do i learn go to python
	require.Equal(t, 7, table.Size())
}

func TestFitIDF(t *testing.T) {
	table, err := FitIDF([]string{"foo bar", "bar baz", "bar", "qux qux"})
	require.NoError(t, err)
	require.Equal(t, IDFWeights, table.Kind)
	require.InDelta(t, 1.0, table.Weight("foo"), 1e-12)
	require.InDelta(t, math.Log2(4.0/4.0), table.Weight("bar"), 1e-12)
	// document frequency counts each question once
	require.InDelta(t, 1.0, table.Weight("qux"), 1e-12)
	require.Equal(t, 0.0, table.Weight("missing"))
}

func TestFitEmptyCorpus(t *testing.T) {
	_, err := FitIDF(nil)
	require.True(t, errors.Is(err, ErrEmptyCorpus))
	_, err = FitCountWeights([]string{}, DefaultCountWeightParameters())
	require.True(t, errors.Is(err, ErrEmptyCorpus))
}

func TestScale(t *testing.T) {
	table := &WeightTable{Kind: IDFWeights, Weights: map[string]float64{"a": 1.5}}
	scaled := table.Scale(2)
	require.Equal(t, 3.0, scaled.Weight("a"))
	require.Equal(t, 1.5, table.Weight("a"))
}
