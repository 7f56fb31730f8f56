// Package ttest implements the one-sample Student's t-test: the test
// statistic, its two-tailed p-value and the t-based confidence interval
// for the sample mean.
//
// All functions are pure. Invalid input is reported as an INVALID_INPUT
// AppError whose cause is one of the domain/core sentinels.
package ttest

import (
	"math"

	"hypotest/domain/core"
	"hypotest/domain/stats"
	"hypotest/internal/errors"

	mstats "github.com/montanaflynn/stats"
)

// DefaultConfidenceLevel is used when a OneSampleTTest is built without one.
const DefaultConfidenceLevel = 0.95

// OneSampleTTest tests whether a sample mean differs from a known
// population mean at ConfidenceLevel.
type OneSampleTTest struct {
	ConfidenceLevel float64
}

// New creates a OneSampleTTest at confidenceLevel.
func New(confidenceLevel float64) (*OneSampleTTest, error) {
	if err := validateLevel(confidenceLevel); err != nil {
		return nil, err
	}
	return &OneSampleTTest{ConfidenceLevel: confidenceLevel}, nil
}

// Run computes the statistic, p-value and confidence interval in one pass.
func (t *OneSampleTTest) Run(sample []float64, populationMean float64) (*stats.TestResult, error) {
	level := t.ConfidenceLevel
	if level == 0 {
		level = DefaultConfidenceLevel
	}
	if err := validateLevel(level); err != nil {
		return nil, err
	}

	m, err := describe(sample, populationMean)
	if err != nil {
		return nil, err
	}

	p, err := PValue(m.statistic, m.df)
	if err != nil {
		return nil, err
	}

	ci, err := ConfidenceInterval(m.mean, m.se, m.df, level)
	if err != nil {
		return nil, err
	}

	return &stats.TestResult{
		Statistic:          m.statistic,
		DegreesOfFreedom:   m.df,
		PValue:             p,
		ConfidenceInterval: ci,
		SampleSize:         len(sample),
		SampleMean:         m.mean,
		StandardError:      m.se,
		PopulationMean:     populationMean,
	}, nil
}

// Compute returns the t-statistic (x̄ - populationMean)/(s/√n) and the
// degrees of freedom n-1. s is the sample standard deviation with the
// n-1 divisor.
func Compute(sample []float64, populationMean float64) (float64, int, error) {
	m, err := describe(sample, populationMean)
	if err != nil {
		return 0, 0, err
	}
	return m.statistic, m.df, nil
}

// StandardError returns the sample mean and its standard error s/√n.
func StandardError(sample []float64) (mean, se float64, err error) {
	if err := validateSample(sample); err != nil {
		return 0, 0, err
	}
	return meanAndSE(sample)
}

// ConfidenceInterval returns sampleMean ± t*·standardError where t* is the
// two-sided critical value at confidenceLevel.
func ConfidenceInterval(sampleMean, standardError float64, df int, confidenceLevel float64) (stats.Interval, error) {
	if !isFinite(sampleMean) {
		return stats.Interval{}, errors.InvalidInputf(core.ErrNonFinite, "sample mean %v", sampleMean)
	}
	if !isFinite(standardError) || standardError < 0 {
		return stats.Interval{}, errors.InvalidInputf(core.ErrNonFinite, "standard error %v", standardError)
	}

	tCritical, err := CriticalValue(confidenceLevel, df)
	if err != nil {
		return stats.Interval{}, err
	}

	margin := tCritical * standardError
	if !isFinite(margin) || !isFinite(sampleMean-margin) || !isFinite(sampleMean+margin) {
		return stats.Interval{}, errors.InvalidInputf(core.ErrNonFinite, "interval %v ± %v overflows", sampleMean, margin)
	}
	return stats.Interval{
		Level: confidenceLevel,
		Lower: sampleMean - margin,
		Upper: sampleMean + margin,
	}, nil
}

// Decide applies the rejection rule: reject the null hypothesis when
// pValue < 1 - confidenceLevel.
func Decide(pValue float64, df int, confidenceLevel float64) (stats.Decision, error) {
	tCritical, err := CriticalValue(confidenceLevel, df)
	if err != nil {
		return stats.Decision{}, err
	}
	if math.IsNaN(pValue) || pValue < 0 || pValue > 1 {
		return stats.Decision{}, errors.InvalidInputf(core.ErrNonFinite, "p-value %v", pValue)
	}

	alpha := 1 - confidenceLevel
	return stats.Decision{
		ConfidenceLevel:   confidenceLevel,
		SignificanceLevel: alpha,
		CriticalValue:     tCritical,
		RejectNull:        pValue < alpha,
	}, nil
}

type moments struct {
	mean      float64
	se        float64
	statistic float64
	df        int
}

func describe(sample []float64, populationMean float64) (moments, error) {
	if err := validateSample(sample); err != nil {
		return moments{}, err
	}
	if !isFinite(populationMean) {
		return moments{}, errors.InvalidInputf(core.ErrNonFinite, "population mean %v", populationMean)
	}

	mean, se, err := meanAndSE(sample)
	if err != nil {
		return moments{}, err
	}
	if se == 0 {
		return moments{}, errors.InvalidInputf(core.ErrZeroVariance, "standard error is zero for %d identical observations", len(sample))
	}

	statistic := (mean - populationMean) / se
	if !isFinite(statistic) {
		return moments{}, errors.InvalidInputf(core.ErrNonFinite, "t-statistic (%v - %v) / %v is not finite", mean, populationMean, se)
	}

	return moments{
		mean:      mean,
		se:        se,
		statistic: statistic,
		df:        len(sample) - 1,
	}, nil
}

func meanAndSE(sample []float64) (float64, float64, error) {
	mean, err := mstats.Mean(sample)
	if err != nil {
		return 0, 0, errors.Wrap(err, "sample mean")
	}
	sd, err := mstats.StandardDeviationSample(sample)
	if err != nil {
		return 0, 0, errors.Wrap(err, "sample standard deviation")
	}
	se := sd / math.Sqrt(float64(len(sample)))
	// Finite observations can still overflow the running sums.
	if !isFinite(mean) || !isFinite(se) {
		return 0, 0, errors.InvalidInputf(core.ErrNonFinite, "sample moments overflow: mean %v, standard error %v", mean, se)
	}
	return mean, se, nil
}

func validateSample(sample []float64) error {
	if len(sample) < 2 {
		return errors.InvalidInputf(core.ErrInsufficientData, "sample size %d, need at least 2", len(sample))
	}
	for i, x := range sample {
		if !isFinite(x) {
			return errors.InvalidInputf(core.ErrNonFinite, "sample[%d] = %v", i, x)
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
