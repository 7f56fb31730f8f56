package main

import (
	"bytes"
	stderrors "errors"
	"strconv"
	"testing"

	"hypotest/domain/core"
	"hypotest/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minnesotaAges = []float64{
	45, 36, 48, 46, 39, 47, 51, 45, 45, 52,
	38, 53, 50, 45, 46, 61, 57, 49, 46, 47,
	56, 49, 41, 50, 42, 40, 41, 43, 44, 53,
	25, 28, 24, 31, 29, 21, 28, 30, 32, 27,
	24, 28, 26, 29, 30, 29, 28, 27, 29, 26,
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"HYPOTEST_SEED", "HYPOTEST_CONFIDENCE_LEVELS", "HYPOTEST_POPULATION_MEAN", "HYPOTEST_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "ERROR")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

func sampleArgs(extra ...string) []string {
	args := []string{"sample"}
	for _, age := range minnesotaAges {
		args = append(args, strconv.FormatFloat(age, 'f', -1, 64))
	}
	return append(args, extra...)
}

func TestWalkthrough_NoArguments(t *testing.T) {
	first, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, first, "One-sample t-test (run ")
	assert.Contains(t, first, "(n=250000)")
	assert.Contains(t, first, "df = 49")
	assert.Contains(t, first, "At 95% confidence")
	assert.Contains(t, first, "At 99% confidence")

	second, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must produce the same report")

	other, err := execute(t, "--seed", "7")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSample_MinnesotaVoters(t *testing.T) {
	out, err := execute(t, sampleArgs("--population-mean", "43")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Population mean: 43.0000 (given)")
	assert.Contains(t, out, "t = -2.5739, df = 49, p = 0.0131 (two-tailed)")
	assert.Contains(t, out, "p = 0.0131 < alpha = 0.05, reject the null hypothesis.")
	assert.Contains(t, out, "p = 0.0131 >= alpha = 0.01, fail to reject the null hypothesis.")
}

func TestSample_MarkdownFormat(t *testing.T) {
	out, err := execute(t, sampleArgs("--population-mean", "43", "--format", "markdown", "--confidence", "0.9")...)
	require.NoError(t, err)

	assert.Contains(t, out, "# One-sample t-test")
	assert.Contains(t, out, "| 90% |")
	assert.NotContains(t, out, "| 95% |")
}

func TestSample_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing population mean", sampleArgs()},
		{"non-numeric observation", []string{"sample", "41", "forty", "--population-mean", "43"}},
		{"confidence of one", sampleArgs("--population-mean", "43", "--confidence", "1")},
		{"unknown format", sampleArgs("--population-mean", "43", "--format", "pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsAppError(err), "got %v", err)
		})
	}
}

func TestSample_TooFewObservations(t *testing.T) {
	_, err := execute(t, "sample", "41", "--population-mean", "43")
	assert.Error(t, err)
}

func TestWalkthrough_PopulationMeanOverride(t *testing.T) {
	out, err := execute(t, "--population-mean", "43")
	require.NoError(t, err)

	assert.Contains(t, out, "(n=250000, generated)")
	assert.Contains(t, out, "Reference mean:  43.0000 (given)")
}

func TestSample_NegativeObservations(t *testing.T) {
	out, err := execute(t, "sample", "--population-mean", "0", "--", "-1.5", "0.3", "2.1", "-0.4")
	require.NoError(t, err)
	assert.Contains(t, out, "df = 3")

	_, err = execute(t, "sample", "-1.5", "0.3", "2.1", "-0.4", "--population-mean", "0")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "negative observations must follow --")

	_, err = execute(t, "sample", "-x", "0.3", "--population-mean", "0")
	require.Error(t, err)
	assert.False(t, errors.IsAppError(err))
}

func TestExitMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", errors.ConfigInvalid("bad seed"), "hypotest: invalid configuration: bad seed"},
		{"app input", errors.InvalidInput("nil report"), "hypotest: invalid input: nil report"},
		{"domain sentinel", core.ErrZeroVariance, "hypotest: invalid input: sample has zero variance"},
		{"other", stderrors.New("broken pipe"), "hypotest: broken pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitMessage(tt.err))
		})
	}
}
