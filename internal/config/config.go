package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"hypotest/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig `validate:"required"`
	Data     DataConfig
	Output   OutputConfig `validate:"required"`
}

// AnalysisConfig holds t-test settings
type AnalysisConfig struct {
	// ConfidenceLevels are evaluated in ascending order; the first one is the
	// level the headline test result is reported at.
	ConfidenceLevels []float64 `validate:"required,min=1,dive,gt=0,lt=1"`
	// PopulationMean overrides the generated population's mean when set.
	PopulationMean *float64 `validate:"omitempty"`
}

// DataConfig holds synthetic data settings
type DataConfig struct {
	Seed uint64
}

// OutputConfig holds reporting and logging settings
type OutputConfig struct {
	Format   string `validate:"required,oneof=text markdown html"`
	LogLevel string `validate:"required,oneof=ERROR WARN INFO DEBUG TRACE"`
}

// Defaults
const (
	DefaultSeed     uint64 = 6
	DefaultFormat          = "text"
	DefaultLogLevel        = "INFO"
)

// DefaultConfidenceLevels are the two levels the walkthrough compares.
var DefaultConfidenceLevels = []float64{0.95, 0.99}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load starts from Default, applies environment variables and validates the result
func Load() (*Config, error) {
	config := Default()

	if err := loadAnalysisConfig(&config.Analysis); err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}

	if err := loadDataConfig(&config.Data); err != nil {
		return nil, errors.Wrap(err, "failed to load data configuration")
	}

	loadOutputConfig(&config.Output)

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	levels := make([]float64, len(DefaultConfidenceLevels))
	copy(levels, DefaultConfidenceLevels)
	return &Config{
		Analysis: AnalysisConfig{ConfidenceLevels: levels},
		Data:     DataConfig{Seed: DefaultSeed},
		Output:   OutputConfig{Format: DefaultFormat, LogLevel: DefaultLogLevel},
	}
}

// Validate checks struct constraints and normalizes confidence level order.
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Output.LogLevel = strings.ToUpper(strings.TrimSpace(c.Output.LogLevel))

	if err := validate.Struct(c); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid configuration"))
	}
	if pm := c.Analysis.PopulationMean; pm != nil && (math.IsNaN(*pm) || math.IsInf(*pm, 0)) {
		return errors.ConfigInvalid(fmt.Sprintf("population mean must be finite, got %v", *pm))
	}

	sort.Float64s(c.Analysis.ConfidenceLevels)
	for i := 1; i < len(c.Analysis.ConfidenceLevels); i++ {
		if c.Analysis.ConfidenceLevels[i] == c.Analysis.ConfidenceLevels[i-1] {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate confidence level %v", c.Analysis.ConfidenceLevels[i]))
		}
	}
	return nil
}

func loadAnalysisConfig(cfg *AnalysisConfig) error {
	if raw := os.Getenv("HYPOTEST_CONFIDENCE_LEVELS"); raw != "" {
		levels, err := ParseLevels(raw)
		if err != nil {
			return err
		}
		cfg.ConfidenceLevels = levels
	}

	if raw := strings.TrimSpace(os.Getenv("HYPOTEST_POPULATION_MEAN")); raw != "" {
		pm, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("HYPOTEST_POPULATION_MEAN: %v", err))
		}
		cfg.PopulationMean = &pm
	}

	return nil
}

func loadDataConfig(cfg *DataConfig) error {
	if raw := strings.TrimSpace(os.Getenv("HYPOTEST_SEED")); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("HYPOTEST_SEED: %v", err))
		}
		cfg.Seed = seed
	}
	return nil
}

func loadOutputConfig(cfg *OutputConfig) {
	cfg.Format = getEnvOrDefault("HYPOTEST_FORMAT", cfg.Format)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
}

// ParseLevels parses a comma separated list such as "0.95,0.99".
func ParseLevels(raw string) ([]float64, error) {
	var levels []float64
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		level, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("confidence level %q: %v", field, err))
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("no confidence levels in %q", raw))
	}
	return levels, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
