package problemgen

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// MaxPrecision bounds DivisionPrecision.
	MaxPrecision = 10

	// MaxOperand bounds the magnitude of every operand, so products and
	// range widths fit in an int.
	MaxOperand = 1_000_000_000
)

// Range is an inclusive operand range.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (r Range) validate() error {
	if r.Min > r.Max {
		return &ConfigError{Field: "numberRange", Message: fmt.Sprintf("min %d exceeds max %d", r.Min, r.Max)}
	}
	if r.Min < -MaxOperand || r.Max > MaxOperand {
		return &ConfigError{Field: "numberRange", Message: fmt.Sprintf("operands must be between %d and %d, got %d..%d", -MaxOperand, MaxOperand, r.Min, r.Max)}
	}
	return nil
}

// ValidatePrecision rejects a requested division precision above
// MaxPrecision with the same error GenerateWithConstraints returns. A
// negative precision is accepted: it selects the configured one.
func ValidatePrecision(p int) error {
	if p > MaxPrecision {
		return &ConfigError{Field: "precision", Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxPrecision, p)}
	}
	return nil
}

// Config controls question generation and answer comparison.
type Config struct {
	// DivisionPrecision is the number of decimal places of a division
	// answer.
	DivisionPrecision int `json:"divisionPrecision" yaml:"divisionPrecision"`

	// NumberRange bounds both operands.
	NumberRange Range `json:"numberRange" yaml:"numberRange"`

	// Tolerance is the absolute difference flexible comparison accepts.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// Operations is the set of operations to draw from.
	Operations []Operation `json:"operations" yaml:"operations,flow"`

	// AvoidNegativeResults swaps subtraction operands and re-rolls any
	// other negative result.
	AvoidNegativeResults bool `json:"avoidNegativeResults" yaml:"avoidNegativeResults"`

	// AvoidDivisionByZero re-rolls a zero divisor.
	AvoidDivisionByZero bool `json:"avoidDivisionByZero" yaml:"avoidDivisionByZero"`

	// MaxAttempts is the retry budget of a single generation call.
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DivisionPrecision:    2,
		NumberRange:          Range{Min: 1, Max: 100},
		Tolerance:            1e-10,
		Operations:           AllOperations(),
		AvoidNegativeResults: false,
		AvoidDivisionByZero:  true,
		MaxAttempts:          100,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Operations = slices.Clone(c.Operations)
	return c
}

// Validate checks every field and returns the first violation as a
// *ConfigError.
func (c Config) Validate() error {
	if c.DivisionPrecision < 0 || c.DivisionPrecision > MaxPrecision {
		return &ConfigError{Field: "divisionPrecision", Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxPrecision, c.DivisionPrecision)}
	}
	if err := c.NumberRange.validate(); err != nil {
		return err
	}
	if c.Tolerance < 0 {
		return &ConfigError{Field: "tolerance", Message: "must not be negative"}
	}
	if len(c.Operations) == 0 {
		return &ConfigError{Field: "operations", Message: "at least one operation is required"}
	}
	for _, op := range c.Operations {
		if !op.Valid() {
			return &ConfigError{Field: "operations", Message: fmt.Sprintf("unknown operation %q", op)}
		}
	}
	if c.MaxAttempts < 1 {
		return &ConfigError{Field: "maxAttempts", Message: "must be at least 1"}
	}
	return nil
}

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %q: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// ConfigPatch is a partial Config. Nil fields are left unchanged by Apply.
type ConfigPatch struct {
	DivisionPrecision    *int        `json:"divisionPrecision,omitempty" yaml:"divisionPrecision,omitempty"`
	NumberRange          *Range      `json:"numberRange,omitempty" yaml:"numberRange,omitempty"`
	Tolerance            *float64    `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	Operations           []Operation `json:"operations,omitempty" yaml:"operations,omitempty"`
	AvoidNegativeResults *bool       `json:"avoidNegativeResults,omitempty" yaml:"avoidNegativeResults,omitempty"`
	AvoidDivisionByZero  *bool       `json:"avoidDivisionByZero,omitempty" yaml:"avoidDivisionByZero,omitempty"`
	MaxAttempts          *int        `json:"maxAttempts,omitempty" yaml:"maxAttempts,omitempty"`
}

// Apply returns a copy of c with every non-nil field of p merged in.
func (c Config) Apply(p ConfigPatch) Config {
	out := c.Clone()
	if p.DivisionPrecision != nil {
		out.DivisionPrecision = *p.DivisionPrecision
	}
	if p.NumberRange != nil {
		out.NumberRange = *p.NumberRange
	}
	if p.Tolerance != nil {
		out.Tolerance = *p.Tolerance
	}
	if p.Operations != nil {
		out.Operations = slices.Clone(p.Operations)
	}
	if p.AvoidNegativeResults != nil {
		out.AvoidNegativeResults = *p.AvoidNegativeResults
	}
	if p.AvoidDivisionByZero != nil {
		out.AvoidDivisionByZero = *p.AvoidDivisionByZero
	}
	if p.MaxAttempts != nil {
		out.MaxAttempts = *p.MaxAttempts
	}
	return out
}

// Patch returns a ConfigPatch that sets every field of c.
func (c Config) Patch() ConfigPatch {
	c = c.Clone()
	return ConfigPatch{
		DivisionPrecision:    &c.DivisionPrecision,
		NumberRange:          &c.NumberRange,
		Tolerance:            &c.Tolerance,
		Operations:           c.Operations,
		AvoidNegativeResults: &c.AvoidNegativeResults,
		AvoidDivisionByZero:  &c.AvoidDivisionByZero,
		MaxAttempts:          &c.MaxAttempts,
	}
}
