package problemgen

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrUnsatisfiableConstraints is returned by GenerateWithConstraints when
// no candidate met the result bounds within the retry budget.
var ErrUnsatisfiableConstraints = errors.New("could not generate question within constraints")

// Constraints narrows a single generation call. Nil fields fall back to
// the generator's configuration.
type Constraints struct {
	Operations  []Operation
	NumberRange *Range
	MinResult   *float64
	MaxResult   *float64
	Precision   *int
}

func (c Constraints) validate() error {
	if c.Operations != nil {
		if len(c.Operations) == 0 {
			return &ConfigError{Field: "operations", Message: "at least one operation is required"}
		}
		for _, op := range c.Operations {
			if !op.Valid() {
				return &ConfigError{Field: "operations", Message: fmt.Sprintf("unknown operation %q", op)}
			}
		}
	}
	if c.NumberRange != nil {
		if err := c.NumberRange.validate(); err != nil {
			return err
		}
	}
	if c.Precision != nil {
		if *c.Precision < 0 {
			return &ConfigError{Field: "precision", Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxPrecision, *c.Precision)}
		}
		if err := ValidatePrecision(*c.Precision); err != nil {
			return err
		}
	}
	if c.MinResult != nil && c.MaxResult != nil && *c.MinResult > *c.MaxResult {
		return &ConfigError{Field: "minResult", Message: fmt.Sprintf("%g exceeds maxResult %g", *c.MinResult, *c.MaxResult)}
	}
	return nil
}

// within reports whether q's numeric answer lies inside the result bounds.
func (c Constraints) within(q Question) bool {
	v := q.NumericAnswer
	if c.MinResult == nil && c.MaxResult == nil {
		return true
	}
	if math.IsNaN(v) {
		return false
	}
	if c.MaxResult != nil && v > *c.MaxResult {
		return false
	}
	if c.MinResult != nil && v < *c.MinResult {
		return false
	}
	return true
}

// GenerateWithConstraints returns a question drawn from the constrained
// operation set and operand range whose answer satisfies the result
// bounds. The generator's operation set and range are overridden for the
// duration of the call and restored on every return path.
//
// The error wraps ErrUnsatisfiableConstraints when MaxAttempts candidates
// all miss the bounds, or is a *ConfigError for malformed constraints.
func (g *Generator) GenerateWithConstraints(c Constraints) (Question, error) {
	if err := c.validate(); err != nil {
		return Question{}, err
	}

	restore := g.override(c)
	defer restore()

	precision := g.cfg.DivisionPrecision
	if c.Precision != nil {
		precision = *c.Precision
	}

	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		q, ok := g.candidate(precision)
		if !ok || !c.within(q) {
			continue
		}
		g.observer.QuestionGenerated(q.Operation)
		return q, nil
	}

	g.observer.ConstraintsUnsatisfied(g.cfg.MaxAttempts)
	return Question{}, fmt.Errorf("%w (%d attempts)", ErrUnsatisfiableConstraints, g.cfg.MaxAttempts)
}

// override applies the constraint's operation set and range to the live
// config and returns a func that restores the previous snapshot.
func (g *Generator) override(c Constraints) (restore func()) {
	saved := g.cfg.Clone()
	if c.Operations != nil {
		g.cfg.Operations = slices.Clone(c.Operations)
	}
	if c.NumberRange != nil {
		g.cfg.NumberRange = *c.NumberRange
	}
	return func() { g.cfg = saved }
}
