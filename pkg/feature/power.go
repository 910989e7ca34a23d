package feature

import (
	"fmt"
	"sort"

	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
	"qpfeat/pkg/text"
)

type wordCounts struct {
	occurrence      int
	correct         int
	oneSide         int
	oneSideCorrect  int
	bothSide        int
	bothSideCorrect int
}

// CalWordPower computes the word power statistics over the rows of ds. A word seen on one
// side only is counted as correct for non-duplicates, a word seen on both sides as correct
// for duplicates. Records are ordered by occurrence count, ties by first occurrence.
func CalWordPower(ds *io.DataSet) ([]model.WordPower, error) {
	pairs := ds.Pairs()
	if len(pairs) == 0 {
		return nil, ErrNoData
	}

	counts := map[string]*wordCounts{}
	var order []string
	for i, p := range pairs {
		if !p.Labeled {
			return nil, fmt.Errorf("subset row %d: %w", i, io.ErrUnlabeled)
		}
		if p.Label != 0 && p.Label != 1 {
			return nil, fmt.Errorf("subset row %d: label must be 0 or 1, got %d", i, p.Label)
		}
		q1 := text.Count(text.Tokenize(p.Question1), nil)
		q2 := text.Count(text.Tokenize(p.Question2), nil)

		visit := func(word string) {
			c, ok := counts[word]
			if !ok {
				c = &wordCounts{}
				counts[word] = c
				order = append(order, word)
			}
			c.occurrence++
			if q1.Contains(word) && q2.Contains(word) {
				c.bothSide++
				if p.Label == 1 {
					c.correct++
					c.bothSideCorrect++
				}
			} else {
				c.oneSide++
				if p.Label == 0 {
					c.correct++
					c.oneSideCorrect++
				}
			}
		}
		for _, word := range q1.Keys {
			visit(word)
		}
		for _, word := range q2.Keys {
			if !q1.Contains(word) {
				visit(word)
			}
		}
	}

	subsetSize := float64(len(pairs))
	result := make([]model.WordPower, len(order))
	for i, word := range order {
		c := counts[word]
		occurrence := float64(c.occurrence)
		wp := model.WordPower{Word: word}
		wp.Stats[model.OccurrenceCount] = occurrence
		wp.Stats[model.OccurrenceRatio] = occurrence / subsetSize
		wp.Stats[model.CorrectRatio] = float64(c.correct) / occurrence
		if c.oneSide > 0 {
			wp.Stats[model.OneSideCorrectRatio] = float64(c.oneSideCorrect) / float64(c.oneSide)
		}
		wp.Stats[model.OneSideCountRatio] = float64(c.oneSide) / occurrence
		if c.bothSide > 0 {
			wp.Stats[model.BothSideCorrectRatio] = float64(c.bothSideCorrect) / float64(c.bothSide)
		}
		wp.Stats[model.BothSideCountRatio] = float64(c.bothSide) / occurrence
		result[i] = wp
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count() > result[j].Count()
	})
	return result, nil
}
