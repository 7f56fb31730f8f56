package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"testing"

	"hypotest/domain/core"
	"hypotest/domain/stats"
	"hypotest/internal"
	"hypotest/internal/errors"
	"hypotest/internal/report"
	"hypotest/internal/synthetic"
	"hypotest/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing
type MockSampleGenerator struct {
	mock.Mock
}

func (m *MockSampleGenerator) Generate(ctx context.Context) (*ports.Samples, error) {
	args := m.Called(ctx)
	samples, _ := args.Get(0).(*ports.Samples)
	return samples, args.Error(1)
}

type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Format() string {
	return m.Called().String(0)
}

func (m *MockReporter) Render(w io.Writer, rep *stats.Report) error {
	args := m.Called(w, rep)
	return args.Error(0)
}

var minnesotaAges = []float64{
	45, 36, 48, 46, 39, 47, 51, 45, 45, 52,
	38, 53, 50, 45, 46, 61, 57, 49, 46, 47,
	56, 49, 41, 50, 42, 40, 41, 43, 44, 53,
	25, 28, 24, 31, 29, 21, 28, 30, 32, 27,
	24, 28, 26, 29, 30, 29, 28, 27, 29, 26,
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerWithOutput(internal.LogLevelError, io.Discard)
}

func TestAnalyzeSample_MinnesotaVoters(t *testing.T) {
	service := NewTTestService(nil, nil, quietLogger())

	rep, err := service.AnalyzeSample(context.Background(), SampleRequest{
		Sample:           minnesotaAges,
		PopulationMean:   43,
		ConfidenceLevels: []float64{0.99, 0.95},
	})
	require.NoError(t, err)

	assert.Nil(t, rep.Population)
	assert.Equal(t, 50, rep.Sample.Count)
	assert.InDelta(t, 39.12, rep.Sample.Mean, 1e-9)
	assert.InDelta(t, -2.574, rep.Result.Statistic, 0.001)
	assert.Equal(t, 49, rep.Result.DegreesOfFreedom)
	assert.InDelta(t, 0.0131, rep.Result.PValue, 0.0002)

	require.Len(t, rep.Intervals, 2)
	require.Len(t, rep.Decisions, 2)
	assert.Equal(t, 0.95, rep.Intervals[0].Level)
	assert.Equal(t, 0.99, rep.Intervals[1].Level)
	assert.Equal(t, rep.Intervals[0], rep.Result.ConfidenceInterval)

	assert.False(t, rep.Intervals[0].Contains(43))
	assert.True(t, rep.Intervals[1].Contains(43))
	assert.True(t, rep.Decisions[0].RejectNull)
	assert.False(t, rep.Decisions[1].RejectNull)

	_, err = core.ParseRunID(rep.RunID.String())
	assert.NoError(t, err)
}

func TestAnalyzeSample_RunIDIsStable(t *testing.T) {
	service := NewTTestService(nil, nil, quietLogger())
	req := SampleRequest{Sample: minnesotaAges, PopulationMean: 43, ConfidenceLevels: []float64{0.95}}

	first, err := service.AnalyzeSample(context.Background(), req)
	require.NoError(t, err)
	second, err := service.AnalyzeSample(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.RunID, second.RunID)

	req.PopulationMean = 42
	third, err := service.AnalyzeSample(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, third.RunID)
}

func TestAnalyzeSample_DefaultLevel(t *testing.T) {
	service := NewTTestService(nil, nil, quietLogger())

	rep, err := service.AnalyzeSample(context.Background(), SampleRequest{Sample: minnesotaAges, PopulationMean: 43})
	require.NoError(t, err)
	require.Len(t, rep.Decisions, 1)
	assert.Equal(t, 0.95, rep.Decisions[0].ConfidenceLevel)
}

func TestAnalyzeSample_InvalidInput(t *testing.T) {
	service := NewTTestService(nil, nil, quietLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		req      SampleRequest
		sentinel error
	}{
		{"single observation", SampleRequest{Sample: []float64{40}, PopulationMean: 43}, core.ErrInsufficientData},
		{"level of one", SampleRequest{Sample: minnesotaAges, PopulationMean: 43, ConfidenceLevels: []float64{0.95, 1}}, core.ErrConfidenceLevel},
		{"level of zero", SampleRequest{Sample: minnesotaAges, PopulationMean: 43, ConfidenceLevels: []float64{0}}, core.ErrConfidenceLevel},
		{"duplicate level", SampleRequest{Sample: minnesotaAges, PopulationMean: 43, ConfidenceLevels: []float64{0.95, 0.95}}, core.ErrConfidenceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AnalyzeSample(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAnalyze_UsesGeneratedPopulationMean(t *testing.T) {
	gen := new(MockSampleGenerator)
	gen.On("Generate", mock.Anything).Return(&ports.Samples{
		Population: []float64{40, 42, 44, 46},
		Sample:     minnesotaAges,
		Seed:       6,
	}, nil)

	service := NewTTestService(gen, nil, quietLogger())
	rep, err := service.Analyze(context.Background(), AnalysisRequest{ConfidenceLevels: []float64{0.95, 0.99}})
	require.NoError(t, err)

	require.NotNil(t, rep.Population)
	assert.Equal(t, 4, rep.Population.Count)
	assert.Equal(t, 43.0, rep.PopulationMean)
	assert.InDelta(t, -2.574, rep.Result.Statistic, 0.001)
	gen.AssertExpectations(t)
}

func TestAnalyze_PopulationMeanOverride(t *testing.T) {
	gen := new(MockSampleGenerator)
	gen.On("Generate", mock.Anything).Return(&ports.Samples{
		Population: []float64{18, 80},
		Sample:     minnesotaAges,
	}, nil)

	override := 43.0
	service := NewTTestService(gen, nil, quietLogger())
	rep, err := service.Analyze(context.Background(), AnalysisRequest{PopulationMean: &override})
	require.NoError(t, err)

	assert.Equal(t, 43.0, rep.PopulationMean)
	assert.Equal(t, 49.0, rep.Population.Mean)
	assert.True(t, rep.Decisions[0].RejectNull)
}

func TestAnalyze_GeneratorFailure(t *testing.T) {
	gen := new(MockSampleGenerator)
	gen.On("Generate", mock.Anything).Return(nil, stderrors.New("source exhausted"))

	service := NewTTestService(gen, nil, quietLogger())
	_, err := service.Analyze(context.Background(), AnalysisRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample generation failed")
	assert.Contains(t, err.Error(), "source exhausted")
}

func TestAnalyze_CanceledContext(t *testing.T) {
	gen := new(MockSampleGenerator)
	service := NewTTestService(gen, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Analyze(ctx, AnalysisRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	gen.AssertNotCalled(t, "Generate", mock.Anything)
}

func TestAnalyze_SyntheticGenerator(t *testing.T) {
	cfg := synthetic.DefaultConfig()
	cfg.Population = []synthetic.Component{
		{Loc: 18, Mu: 35, Size: 1500},
		{Loc: 18, Mu: 10, Size: 1000},
	}
	service := NewTTestService(synthetic.NewGenerator(cfg, nil), nil, quietLogger())

	first, err := service.Analyze(context.Background(), AnalysisRequest{ConfidenceLevels: []float64{0.95, 0.99}})
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), AnalysisRequest{ConfidenceLevels: []float64{0.95, 0.99}})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 49, first.Result.DegreesOfFreedom)
	assert.Equal(t, 2500, first.Population.Count)
	for i := range first.Intervals {
		assert.LessOrEqual(t, first.Intervals[i].Lower, first.Result.SampleMean)
		assert.GreaterOrEqual(t, first.Intervals[i].Upper, first.Result.SampleMean)
	}
	assert.Greater(t, first.Intervals[1].Width(), first.Intervals[0].Width())
}

func TestPublish(t *testing.T) {
	rep := &stats.Report{}
	var buf bytes.Buffer

	reporter := new(MockReporter)
	reporter.On("Render", &buf, rep).Return(nil)

	service := NewTTestService(nil, reporter, quietLogger())
	require.NoError(t, service.Publish(&buf, rep))
	reporter.AssertExpectations(t)
}

func TestPublish_RenderFailure(t *testing.T) {
	reporter := new(MockReporter)
	reporter.On("Render", mock.Anything, mock.Anything).Return(stderrors.New("broken pipe"))
	reporter.On("Format").Return("text")

	service := NewTTestService(nil, reporter, quietLogger())
	err := service.Publish(io.Discard, &stats.Report{})

	require.Error(t, err)
	assert.Equal(t, "render text report: broken pipe", err.Error())
}

func TestPublish_TextReport(t *testing.T) {
	reporter, err := report.ForFormat("text")
	require.NoError(t, err)
	service := NewTTestService(nil, reporter, quietLogger())

	rep, err := service.AnalyzeSample(context.Background(), SampleRequest{
		Sample:           minnesotaAges,
		PopulationMean:   43,
		ConfidenceLevels: []float64{0.95, 0.99},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, service.Publish(&buf, rep))
	assert.Contains(t, buf.String(), "t = -2.5739, df = 49, p = 0.0131")
	assert.Contains(t, buf.String(), "does not capture the population mean")
}
