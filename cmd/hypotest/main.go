// Hypotest walks through a one-sample t-test on synthetic voter ages.
//
// Run with no arguments it generates a national population of ages and a
// 50-voter Minnesota sample, tests whether the sample mean differs from the
// population mean, and narrates the result at 95% and 99% confidence:
//
//	$ hypotest
//	$ hypotest --seed 42 --confidence 0.9,0.95,0.99 --format markdown
//	$ hypotest sample 45 36 48 46 39 25 28 24 --population-mean 43
//	$ hypotest sample --population-mean 0 -- -1.5 0.3 2.1 -0.4
//
// Settings may also come from the environment or a .env file
// (HYPOTEST_SEED, HYPOTEST_CONFIDENCE_LEVELS, HYPOTEST_POPULATION_MEAN,
// HYPOTEST_FORMAT, LOG_LEVEL). Flags win over the environment.
package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"

	"hypotest/app"
	"hypotest/domain/core"
	"hypotest/internal"
	"hypotest/internal/config"
	"hypotest/internal/errors"
	"hypotest/internal/report"
	"hypotest/internal/synthetic"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	// The .env file is optional and never overrides variables already set.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

type options struct {
	seed           uint64
	confidence     []float64
	populationMean float64
	format         string
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "hypotest",
		Short: "One-sample t-test walkthrough on synthetic voter ages",
		Long: `Generate a population of voter ages and a regional sample, then test whether
the sample mean differs from the population mean with a one-sample t-test.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, &opts)
			if err != nil {
				return err
			}
			return runWalkthrough(cmd, cfg, logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Uint64Var(&opts.seed, "seed", config.DefaultSeed, "Random seed for the synthetic population and sample")
	flags.Float64SliceVar(&opts.confidence, "confidence", config.DefaultConfidenceLevels, "Confidence levels in (0,1), e.g. 0.95,0.99")
	flags.Float64Var(&opts.populationMean, "population-mean", 0, "Reference population mean (default: mean of the generated population)")
	flags.StringVar(&opts.format, "format", config.DefaultFormat, fmt.Sprintf("Report format: one of %v", report.Formats()))

	rootCmd.AddCommand(newSampleCmd(&opts))
	return rootCmd
}

func newSampleCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample [flags] [--] values...",
		Short: "Test caller-supplied observations against a population mean",
		Long: `Run the one-sample t-test on the given observations.

Observations that start with a minus sign must follow "--" so they are not
read as flags.

Example: hypotest sample 45 36 48 46 39 25 28 24 --population-mean 43 --confidence 0.95,0.99
         hypotest sample --population-mean 0 -- -1.5 0.3 2.1 -0.4`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			cfg, logger, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Analysis.PopulationMean == nil {
				return errors.InvalidInput("sample needs --population-mean or HYPOTEST_POPULATION_MEAN")
			}
			return runSample(cmd, cfg, logger, values)
		},
	}
	cmd.SetFlagErrorFunc(sampleFlagError)
	return cmd
}

// sampleFlagError points at "--" when a negative observation was parsed as a shorthand flag.
func sampleFlagError(cmd *cobra.Command, err error) error {
	var notExist *pflag.NotExistError
	if !stderrors.As(err, &notExist) || notExist.GetSpecifiedShortnames() == "" {
		return err
	}
	if _, parseErr := strconv.ParseFloat("-"+notExist.GetSpecifiedShortnames(), 64); parseErr == nil {
		return errors.InvalidInputf(err, "negative observations must follow --, e.g. hypotest sample --population-mean 0 -- -1.5 0.3")
	}
	return err
}

// loadConfig reads the environment, then applies any flags the user set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Data.Seed = opts.seed
	}
	if flags.Changed("confidence") {
		cfg.Analysis.ConfidenceLevels = append([]float64(nil), opts.confidence...)
	}
	if flags.Changed("population-mean") {
		pm := opts.populationMean
		cfg.Analysis.PopulationMean = &pm
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, _ := internal.ParseLogLevel(cfg.Output.LogLevel)
	return cfg, internal.NewLoggerWithOutput(level, cmd.ErrOrStderr()), nil
}

func runWalkthrough(cmd *cobra.Command, cfg *config.Config, logger *internal.Logger) error {
	genCfg := synthetic.DefaultConfig()
	genCfg.Seed = cfg.Data.Seed

	reporter, err := report.ForFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	service := app.NewTTestService(synthetic.NewGenerator(genCfg, synthetic.PCGSource{}), reporter, logger)
	rep, err := service.Analyze(cmd.Context(), app.AnalysisRequest{
		ConfidenceLevels: cfg.Analysis.ConfidenceLevels,
		PopulationMean:   cfg.Analysis.PopulationMean,
	})
	if err != nil {
		return err
	}
	return service.Publish(cmd.OutOrStdout(), rep)
}

func runSample(cmd *cobra.Command, cfg *config.Config, logger *internal.Logger, values []float64) error {
	reporter, err := report.ForFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	service := app.NewTTestService(nil, reporter, logger)
	rep, err := service.AnalyzeSample(cmd.Context(), app.SampleRequest{
		Sample:           values,
		PopulationMean:   *cfg.Analysis.PopulationMean,
		ConfidenceLevels: cfg.Analysis.ConfidenceLevels,
	})
	if err != nil {
		return err
	}
	return service.Publish(cmd.OutOrStdout(), rep)
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("observation %d (%q) is not a number", i+1, arg))
		}
		values[i] = v
	}
	return values, nil
}

// exitMessage labels input and configuration failures so the user knows
// which precondition to fix.
func exitMessage(err error) string {
	switch {
	case errors.GetCode(err) == errors.CodeConfigInvalid:
		return "hypotest: invalid configuration: " + err.Error()
	case core.IsInputError(err) || errors.IsInvalidInput(err):
		return "hypotest: invalid input: " + err.Error()
	}
	return "hypotest: " + err.Error()
}
