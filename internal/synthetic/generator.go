// Package synthetic generates reproducible age data for t-test walkthroughs:
// a large voting-age population and a smaller regional sample, each a
// concatenation of shifted Poisson components.
package synthetic

import (
	"context"
	"fmt"
	"math/rand/v2"

	"hypotest/domain/core"
	"hypotest/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// Component draws Size observations of Loc + Poisson(Mu).
type Component struct {
	Loc  float64
	Mu   float64
	Size int
}

// Config describes one generated dataset.
type Config struct {
	Seed       uint64
	Population []Component
	Sample     []Component
}

// DefaultConfig mirrors the voter-age walkthrough: a national population of
// 150,000 ages around 53 and 100,000 around 28, and a Minnesota sample of
// 30 ages around 48 and 20 around 28. The sizes are illustrative only.
func DefaultConfig() Config {
	return Config{
		Seed: 6,
		Population: []Component{
			{Loc: 18, Mu: 35, Size: 150000},
			{Loc: 18, Mu: 10, Size: 100000},
		},
		Sample: []Component{
			{Loc: 18, Mu: 30, Size: 30},
			{Loc: 18, Mu: 10, Size: 20},
		},
	}
}

// Validate checks that every component can be drawn.
func (c Config) Validate() error {
	if len(c.Population) == 0 {
		return core.NewValidationError("population", "needs at least one component")
	}
	if len(c.Sample) == 0 {
		return core.NewValidationError("sample", "needs at least one component")
	}
	groups := []struct {
		name  string
		comps []Component
	}{
		{"population", c.Population},
		{"sample", c.Sample},
	}
	for _, g := range groups {
		for i, comp := range g.comps {
			field := fmt.Sprintf("%s component %d", g.name, i)
			if comp.Size <= 0 {
				return core.NewValidationError(field, "size must be > 0")
			}
			if !(comp.Mu > 0) {
				return core.NewValidationError(field, "mu must be > 0")
			}
		}
	}
	return nil
}

// PCGSource is the default RNGPort: a PCG stream keyed by the seed.
type PCGSource struct{}

// Source returns a PCG source for seed.
func (PCGSource) Source(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Dataset is the generated population and sample.
type Dataset struct {
	Population []float64
	Sample     []float64
}

// Generate draws the population and then the sample from a single source
// seeded with cfg.Seed. Equal configs produce equal datasets.
func Generate(cfg Config, rng ports.RNGPort) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = PCGSource{}
	}

	src := rng.Source(cfg.Seed)
	return &Dataset{
		Population: draw(cfg.Population, src),
		Sample:     draw(cfg.Sample, src),
	}, nil
}

func draw(comps []Component, src rand.Source) []float64 {
	total := 0
	for _, c := range comps {
		total += c.Size
	}

	out := make([]float64, 0, total)
	for _, c := range comps {
		dist := distuv.Poisson{Lambda: c.Mu, Src: src}
		for i := 0; i < c.Size; i++ {
			out = append(out, c.Loc+dist.Rand())
		}
	}
	return out
}

// Generator adapts Generate to ports.SampleGeneratorPort.
type Generator struct {
	cfg Config
	rng ports.RNGPort
}

// NewGenerator creates a generator for cfg using rng, or PCGSource when rng is nil.
func NewGenerator(cfg Config, rng ports.RNGPort) *Generator {
	if rng == nil {
		rng = PCGSource{}
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate implements ports.SampleGeneratorPort.
func (g *Generator) Generate(ctx context.Context) (*ports.Samples, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := Generate(g.cfg, g.rng)
	if err != nil {
		return nil, err
	}

	return &ports.Samples{
		Population: ds.Population,
		Sample:     ds.Sample,
		Seed:       g.cfg.Seed,
	}, nil
}
