package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// envConfig holds raw env values. Fields are pre-filled from the current
// config, so variables that are unset leave the value unchanged.
type envConfig struct {
	DivisionPrecision    int      `env:"MATHCAPTCHA_DIVISION_PRECISION"`
	NumberMin            int      `env:"MATHCAPTCHA_NUMBER_MIN"`
	NumberMax            int      `env:"MATHCAPTCHA_NUMBER_MAX"`
	Tolerance            float64  `env:"MATHCAPTCHA_TOLERANCE"`
	Operations           []string `env:"MATHCAPTCHA_OPERATIONS"             envSeparator:","`
	AvoidNegativeResults bool     `env:"MATHCAPTCHA_AVOID_NEGATIVE_RESULTS"`
	AvoidDivisionByZero  bool     `env:"MATHCAPTCHA_AVOID_DIVISION_BY_ZERO"`
	MaxAttempts          int      `env:"MATHCAPTCHA_MAX_ATTEMPTS"`
}

// ApplyEnv overrides fields of cfg from MATHCAPTCHA_* environment
// variables.
func ApplyEnv(cfg problemgen.Config) (problemgen.Config, error) {
	raw := envConfig{
		DivisionPrecision:    cfg.DivisionPrecision,
		NumberMin:            cfg.NumberRange.Min,
		NumberMax:            cfg.NumberRange.Max,
		Tolerance:            cfg.Tolerance,
		AvoidNegativeResults: cfg.AvoidNegativeResults,
		AvoidDivisionByZero:  cfg.AvoidDivisionByZero,
		MaxAttempts:          cfg.MaxAttempts,
	}
	for _, op := range cfg.Operations {
		raw.Operations = append(raw.Operations, string(op))
	}

	if err := env.Parse(&raw); err != nil {
		return problemgen.Config{}, fmt.Errorf("parse env: %w", err)
	}

	ops, err := problemgen.ParseOperations(raw.Operations)
	if err != nil {
		return problemgen.Config{}, fmt.Errorf("parse env: MATHCAPTCHA_OPERATIONS: %w", err)
	}

	return cfg.Apply(problemgen.ConfigPatch{
		DivisionPrecision:    &raw.DivisionPrecision,
		NumberRange:          &problemgen.Range{Min: raw.NumberMin, Max: raw.NumberMax},
		Tolerance:            &raw.Tolerance,
		Operations:           ops,
		AvoidNegativeResults: &raw.AvoidNegativeResults,
		AvoidDivisionByZero:  &raw.AvoidDivisionByZero,
		MaxAttempts:          &raw.MaxAttempts,
	}), nil
}
