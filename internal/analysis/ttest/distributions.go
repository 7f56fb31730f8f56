package ttest

import (
	"math"

	"hypotest/domain/core"
	"hypotest/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// studentsT returns the standard Student's t-distribution with df degrees of freedom.
func studentsT(df int) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
}

// PValue returns the two-tailed p-value 2·CDF(-|statistic|) for Student's t
// with df degrees of freedom. A zero statistic yields exactly 1.
func PValue(statistic float64, df int) (float64, error) {
	if df < 1 {
		return 0, errors.InvalidInputf(core.ErrDegreesOfFreedom, "degrees of freedom %d", df)
	}
	if math.IsNaN(statistic) {
		return 0, errors.InvalidInputf(core.ErrNonFinite, "t-statistic is NaN")
	}
	if statistic == 0 {
		return 1, nil
	}

	p := 2 * studentsT(df).CDF(-math.Abs(statistic))
	return math.Min(math.Max(p, 0), 1), nil
}

// CriticalValue returns t* such that CDF(t*) = 1 - (1-confidenceLevel)/2,
// the upper cutoff of a two-sided interval at confidenceLevel.
func CriticalValue(confidenceLevel float64, df int) (float64, error) {
	if err := validateLevel(confidenceLevel); err != nil {
		return 0, err
	}
	if df < 1 {
		return 0, errors.InvalidInputf(core.ErrDegreesOfFreedom, "degrees of freedom %d", df)
	}

	alpha := 1.0 - confidenceLevel
	return studentsT(df).Quantile(1.0 - alpha/2.0), nil
}

func validateLevel(confidenceLevel float64) error {
	// NaN fails both comparisons, so it is rejected here too.
	if !(confidenceLevel > 0 && confidenceLevel < 1) {
		return errors.InvalidInputf(core.ErrConfidenceLevel, "confidence level %v", confidenceLevel)
	}
	return nil
}
