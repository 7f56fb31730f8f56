package stats

import (
	"hypotest/domain/core"
)

// ============================================================================
// DESCRIPTIVE STATISTICS
// ============================================================================

// Summary holds descriptive statistics for one set of observations.
// StdDev uses the n-1 divisor.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// ============================================================================
// ONE-SAMPLE T-TEST
// ============================================================================

// Interval is a two-sided confidence interval for a mean.
type Interval struct {
	Level float64 `json:"level"` // confidence level in (0, 1)
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether x lies inside the closed interval.
func (i Interval) Contains(x float64) bool {
	return i.Lower <= x && x <= i.Upper
}

// Width returns Upper - Lower.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// TestResult is the outcome of a one-sample t-test.
// INVARIANTS:
// - DegreesOfFreedom == SampleSize - 1 and >= 1
// - PValue in [0, 1]
// - ConfidenceInterval.Lower <= SampleMean <= ConfidenceInterval.Upper
type TestResult struct {
	Statistic          float64  `json:"statistic"`
	DegreesOfFreedom   int      `json:"degrees_of_freedom"`
	PValue             float64  `json:"p_value"`
	ConfidenceInterval Interval `json:"confidence_interval"`

	SampleSize     int     `json:"sample_size"`
	SampleMean     float64 `json:"sample_mean"`
	StandardError  float64 `json:"standard_error"`
	PopulationMean float64 `json:"population_mean"`
}

// Decision applies the rejection rule at one confidence level.
type Decision struct {
	ConfidenceLevel   float64 `json:"confidence_level"`
	SignificanceLevel float64 `json:"significance_level"` // 1 - ConfidenceLevel
	CriticalValue     float64 `json:"critical_value"`     // upper-tail t*; reject region is |t| > t*
	RejectNull        bool    `json:"reject_null"`
}

// ============================================================================
// REPORT
// ============================================================================

// Report collects everything a renderer needs to narrate one analysis.
// Intervals and Decisions are index-aligned and ordered by confidence level.
type Report struct {
	RunID          core.RunID `json:"run_id"`
	Population     *Summary   `json:"population,omitempty"` // nil when the mean was supplied directly
	Sample         Summary    `json:"sample"`
	PopulationMean float64    `json:"population_mean"`
	Result         TestResult `json:"result"`
	Intervals      []Interval `json:"intervals"`
	Decisions      []Decision `json:"decisions"`
}
