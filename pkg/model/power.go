package model

// Positions of the statistics held by WordPower.Stats.
const (
	OccurrenceCount = iota
	OccurrenceRatio
	CorrectRatio
	OneSideCountRatio
	OneSideCorrectRatio
	BothSideCountRatio
	BothSideCorrectRatio

	WordPowerSize
)

// WordPower describes how predictive a word's one-sided/both-sided presence is of the
// duplicate label.
type WordPower struct {
	Word  string
	Stats [WordPowerSize]float64
}

func (w WordPower) Count() float64 {
	return w.Stats[OccurrenceCount]
}
