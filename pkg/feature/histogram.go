package feature

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LabelHistogram summarizes the distribution of a feature for non-duplicate (index 0)
// and duplicate (index 1) rows.
type LabelHistogram struct {
	Dividers []float64
	// Density holds per bin densities, each label's histogram integrates to 1
	Density [2][]float64
	Count   [2]int
	Mean    [2]float64
	// Correlation is Pearson's r between the feature and the label
	Correlation float64
}

func NewLabelHistogram(values []float64, labels []int, bins int) (*LabelHistogram, error) {
	if len(values) != len(labels) {
		return nil, fmt.Errorf("got %d values and %d labels", len(values), len(labels))
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	if bins < 1 {
		return nil, errors.New("histogram needs at least one bin")
	}

	var byLabel [2][]float64
	labelValues := make([]float64, len(labels))
	for i, label := range labels {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("row %d: label must be 0 or 1, got %d", i, label)
		}
		byLabel[label] = append(byLabel[label], values[i])
		labelValues[i] = float64(label)
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if hi <= lo {
		hi = lo + 1
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// the upper bound is exclusive in stat.Histogram
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	h := &LabelHistogram{
		Dividers:    dividers,
		Correlation: stat.Correlation(values, labelValues, nil),
	}
	for label, x := range byLabel {
		h.Count[label] = len(x)
		if len(x) == 0 {
			h.Density[label] = make([]float64, bins)
			continue
		}
		sort.Float64s(x)
		counts := stat.Histogram(nil, dividers, x, nil)
		for i := range counts {
			counts[i] /= float64(len(x)) * (dividers[i+1] - dividers[i])
		}
		h.Density[label] = counts
		h.Mean[label] = stat.Mean(x, nil)
	}
	return h, nil
}
