package app

import (
	"context"
	"io"
	"sort"
	"time"

	"hypotest/domain/core"
	"hypotest/domain/stats"
	"hypotest/internal"
	"hypotest/internal/analysis/ttest"
	"hypotest/internal/errors"
	"hypotest/internal/profiling"
	"hypotest/ports"
)

// TTestService orchestrates data generation, the one-sample t-test and reporting
type TTestService struct {
	generatorPort ports.SampleGeneratorPort
	reporterPort  ports.ReporterPort
	analyzer      *profiling.DistributionAnalyzer
	logger        *internal.Logger
}

// AnalysisRequest runs the test on generated data
type AnalysisRequest struct {
	ConfidenceLevels []float64
	// PopulationMean replaces the generated population's mean when non-nil
	PopulationMean *float64
}

// SampleRequest runs the test on caller-supplied observations
type SampleRequest struct {
	Sample           []float64
	PopulationMean   float64
	ConfidenceLevels []float64
}

// NewTTestService creates a t-test service. A nil logger uses internal.DefaultLogger.
func NewTTestService(generatorPort ports.SampleGeneratorPort, reporterPort ports.ReporterPort, logger *internal.Logger) *TTestService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TTestService{
		generatorPort: generatorPort,
		reporterPort:  reporterPort,
		analyzer:      profiling.NewDistributionAnalyzer(),
		logger:        logger,
	}
}

// Analyze generates a population and sample, then tests the sample mean
// against the population mean.
func (s *TTestService) Analyze(ctx context.Context, req AnalysisRequest) (*stats.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.generatorPort == nil {
		return nil, errors.InternalError("no sample generator configured")
	}
	startTime := time.Now()

	samples, err := s.generatorPort.Generate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "sample generation failed")
	}
	s.logger.Debug("generated population=%d sample=%d seed=%d", len(samples.Population), len(samples.Sample), samples.Seed)

	population, err := s.analyzer.Summarize(samples.Population)
	if err != nil {
		return nil, errors.Wrap(err, "population summary failed")
	}

	popMean := population.Mean
	if req.PopulationMean != nil {
		popMean = *req.PopulationMean
		s.logger.Debug("population mean overridden: %.4f (generated %.4f)", popMean, population.Mean)
	}

	report, err := s.evaluate(ctx, samples.Sample, popMean, req.ConfidenceLevels)
	if err != nil {
		return nil, err
	}
	report.Population = &population

	s.logger.Info("run %s: t=%.4f df=%d p=%.4g in %s", report.RunID, report.Result.Statistic,
		report.Result.DegreesOfFreedom, report.Result.PValue, time.Since(startTime))
	return report, nil
}

// AnalyzeSample tests caller-supplied observations against a known population mean.
func (s *TTestService) AnalyzeSample(ctx context.Context, req SampleRequest) (*stats.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := s.evaluate(ctx, req.Sample, req.PopulationMean, req.ConfidenceLevels)
	if err != nil {
		return nil, err
	}

	s.logger.Info("run %s: t=%.4f df=%d p=%.4g", report.RunID, report.Result.Statistic,
		report.Result.DegreesOfFreedom, report.Result.PValue)
	return report, nil
}

// Publish renders report with the configured reporter.
func (s *TTestService) Publish(w io.Writer, report *stats.Report) error {
	if s.reporterPort == nil {
		return errors.InternalError("no reporter configured")
	}
	if err := s.reporterPort.Render(w, report); err != nil {
		return errors.Wrapf(err, "render %s report", s.reporterPort.Format())
	}
	return nil
}

// evaluate runs the test at the lowest confidence level and adds an interval
// and decision for every requested level.
func (s *TTestService) evaluate(ctx context.Context, sample []float64, popMean float64, confidenceLevels []float64) (*stats.Report, error) {
	levels, err := normalizeLevels(confidenceLevels)
	if err != nil {
		return nil, err
	}

	summary, err := s.analyzer.Summarize(sample)
	if err != nil {
		return nil, errors.Wrap(err, "sample summary failed")
	}

	test, err := ttest.New(levels[0])
	if err != nil {
		return nil, err
	}
	result, err := test.Run(sample, popMean)
	if err != nil {
		return nil, errors.Wrap(err, "t-test failed")
	}
	s.logger.Debug("t=%.4f df=%d p=%.6f se=%.4f", result.Statistic, result.DegreesOfFreedom, result.PValue, result.StandardError)

	intervals := make([]stats.Interval, 0, len(levels))
	decisions := make([]stats.Decision, 0, len(levels))
	for _, level := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ci, err := ttest.ConfidenceInterval(result.SampleMean, result.StandardError, result.DegreesOfFreedom, level)
		if err != nil {
			return nil, errors.Wrapf(err, "confidence interval at %v", level)
		}
		decision, err := ttest.Decide(result.PValue, result.DegreesOfFreedom, level)
		if err != nil {
			return nil, errors.Wrapf(err, "decision at %v", level)
		}
		s.logger.Trace("level=%v interval=[%.4f, %.4f] reject=%t", level, ci.Lower, ci.Upper, decision.RejectNull)

		intervals = append(intervals, ci)
		decisions = append(decisions, decision)
	}

	fingerprint := core.ComputeSampleHash(sample, append([]float64{popMean}, levels...)...)

	return &stats.Report{
		RunID:          core.NewRunID(fingerprint),
		Sample:         summary,
		PopulationMean: popMean,
		Result:         *result,
		Intervals:      intervals,
		Decisions:      decisions,
	}, nil
}

func normalizeLevels(confidenceLevels []float64) ([]float64, error) {
	if len(confidenceLevels) == 0 {
		return []float64{ttest.DefaultConfidenceLevel}, nil
	}

	levels := append([]float64(nil), confidenceLevels...)
	sort.Float64s(levels)
	for i, level := range levels {
		if i > 0 && level == levels[i-1] {
			return nil, errors.InvalidInputf(core.ErrConfidenceLevel, "duplicate confidence level %v", level)
		}
	}
	// Sorted, so checking both ends covers every level. NaN sorts first.
	for _, level := range []float64{levels[0], levels[len(levels)-1]} {
		if _, err := ttest.New(level); err != nil {
			return nil, err
		}
	}
	return levels, nil
}
