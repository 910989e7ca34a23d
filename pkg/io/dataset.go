package io

import (
	"fmt"
	"math/rand"
)

// Pair is one row of a question-pair table.
type Pair struct {
	ID        string
	Qid1      string
	Qid2      string
	Question1 string
	Question2 string
	// Label is is_duplicate and only meaningful when Labeled is set
	Label   int
	Labeled bool
}

type DataSet struct {
	Data         []*Pair
	BatchSize    int
	Rand         *rand.Rand
	dataIndices  []int
	currentOrder []int
	currentIndex int
}

// Reset rewinds Next to the first pair of the data set.
func (d *DataSet) Reset() {
	if d.currentOrder == nil {
		d.currentOrder = make([]int, len(d.dataIndices))
	}
	copy(d.currentOrder, d.dataIndices)
	d.currentIndex = 0
}

// Next returns the next batch of at most BatchSize pairs and the position of its first
// pair in the current order. An empty batch means the data set is exhausted.
func (d *DataSet) Next() (int, []*Pair) {
	start := d.currentIndex
	batch := make([]*Pair, 0, d.BatchSize)
	for ; d.currentIndex < len(d.currentOrder) && len(batch) < d.BatchSize; d.currentIndex++ {
		batch = append(batch, d.Data[d.currentOrder[d.currentIndex]])
	}
	return start, batch
}

// Pairs returns the pairs of the data set in original order.
func (d *DataSet) Pairs() []*Pair {
	pairs := make([]*Pair, len(d.dataIndices))
	for i, index := range d.dataIndices {
		pairs[i] = d.Data[index]
	}
	return pairs
}

// Questions returns question1 of every pair followed by question2 of every pair.
func (d *DataSet) Questions() []string {
	questions := make([]string, 0, 2*len(d.dataIndices))
	for _, index := range d.dataIndices {
		questions = append(questions, d.Data[index].Question1)
	}
	for _, index := range d.dataIndices {
		questions = append(questions, d.Data[index].Question2)
	}
	return questions
}

// UniqueQuestions deduplicates the questions of the data set. Pairs carrying qids are
// deduplicated by qid, the rest by text. First occurrence wins.
func (d *DataSet) UniqueQuestions() []string {
	var questions []string
	seenIDs := map[string]struct{}{}
	seenText := map[string]struct{}{}
	add := func(qid, question string) {
		if qid != "" {
			if _, ok := seenIDs[qid]; ok {
				return
			}
			seenIDs[qid] = struct{}{}
		} else {
			if _, ok := seenText[question]; ok {
				return
			}
			seenText[question] = struct{}{}
		}
		questions = append(questions, question)
	}
	for _, p := range d.Pairs() {
		add(p.Qid1, p.Question1)
		add(p.Qid2, p.Question2)
	}
	return questions
}

// Labels returns the label of every pair in original order.
func (d *DataSet) Labels() ([]int, error) {
	labels := make([]int, len(d.dataIndices))
	for i, index := range d.dataIndices {
		p := d.Data[index]
		if !p.Labeled {
			return nil, fmt.Errorf("row %d: %w", index, ErrUnlabeled)
		}
		labels[i] = p.Label
	}
	return labels, nil
}

func (d *DataSet) Size() int {
	return len(d.dataIndices)
}

func NewDataSet(data []*Pair, batchSize int) *DataSet {
	dataIndices := make([]int, len(data))
	for i := range dataIndices {
		dataIndices[i] = i
	}
	ds := &DataSet{Data: data, BatchSize: batchSize, dataIndices: dataIndices}
	ds.Reset()
	return ds
}

// NewDataSetSplit views the rows of data at indices. Indices may repeat.
func NewDataSetSplit(data []*Pair, batchSize int, indices []int) (*DataSet, error) {
	for _, index := range indices {
		if index < 0 || index >= len(data) {
			return nil, fmt.Errorf("index %d of %d rows: %w", index, len(data), ErrIndexOutOfRange)
		}
	}
	ds := &DataSet{
		Data: data, BatchSize: batchSize, dataIndices: indices}
	ds.Reset()
	return ds, nil
}

func (d *DataSet) RandomSplit(sizes ...int) []*DataSet {
	indices := make([]int, len(d.dataIndices))
	copy(indices, d.dataIndices)
	d.Rand.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	splits := make([]*DataSet, len(sizes))
	idx := 0
	for i := range sizes {
		splitIndices := make([]int, sizes[i])
		for j := range splitIndices {
			splitIndices[j] = indices[idx]
			idx++
		}
		splits[i] = &DataSet{Data: d.Data, BatchSize: d.BatchSize, Rand: d.Rand, dataIndices: splitIndices}
		splits[i].Reset()
	}
	return splits

}

// Indices returns the row indices viewed by the data set.
func (d *DataSet) Indices() []int {
	indices := make([]int, len(d.dataIndices))
	copy(indices, d.dataIndices)
	return indices
}
