package model

// Model is the persisted state of a fitted feature extractor.
type Model struct {
	Feature string
	Weights *WeightTable
}
