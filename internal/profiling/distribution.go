package profiling

import (
	"hypotest/domain/core"
	"hypotest/domain/stats"
	"hypotest/internal/errors"

	mstats "github.com/montanaflynn/stats"
)

// DistributionAnalyzer computes descriptive summaries of observations
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Summarize returns count, mean, sample standard deviation, min, max and median.
// A single observation has a standard deviation of zero.
func (da *DistributionAnalyzer) Summarize(data []float64) (stats.Summary, error) {
	summary := stats.Summary{Count: len(data)}
	if len(data) == 0 {
		return summary, errors.InvalidInputf(core.ErrInsufficientData, "cannot summarize an empty dataset")
	}

	mean, err := mstats.Mean(data)
	if err != nil {
		return summary, errors.Wrap(err, "mean")
	}

	min, err := mstats.Min(data)
	if err != nil {
		return summary, errors.Wrap(err, "min")
	}

	max, err := mstats.Max(data)
	if err != nil {
		return summary, errors.Wrap(err, "max")
	}

	median, err := mstats.Median(data)
	if err != nil {
		return summary, errors.Wrap(err, "median")
	}

	if len(data) > 1 {
		stdDev, err := mstats.StandardDeviationSample(data)
		if err != nil {
			return summary, errors.Wrap(err, "standard deviation")
		}
		summary.StdDev = stdDev
	}

	summary.Mean = mean
	summary.Min = min
	summary.Max = max
	summary.Median = median

	return summary, nil
}
