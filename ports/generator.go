package ports

import (
	"context"
)

// Samples holds one generated population and one sample drawn beside it.
type Samples struct {
	Population []float64 `json:"population"`
	Sample     []float64 `json:"sample"`
	Seed       uint64    `json:"seed"`
}

// SampleGeneratorPort produces the observations an analysis runs on
type SampleGeneratorPort interface {
	Generate(ctx context.Context) (*Samples, error)
}
