package problemgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/mathcaptcha/internal/decimal"
)

// AnswerFormatValidator checks that the canonical answer has the shape its
// operation implies: a plain integer for +, - and *, and a decimal with the
// expected number of places for /.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *Question, in CheckInput) *ValidationError {
	if q.Operation == OpDivide {
		if err := validateQuotient(q.Answer, in.Precision); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid division answer %q: %s", q.Answer, err),
			}
		}
		return nil
	}

	if err := validateInteger(q.Answer); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("invalid integer answer %q: %s", q.Answer, err),
		}
	}
	return nil
}

// validateInteger checks that s is a canonical integer: no decimal point,
// no leading zeros, no negative zero.
func validateInteger(s string) error {
	if !decimal.IsNumeric(s) || strings.Contains(s, ".") {
		return fmt.Errorf("not a valid integer")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("out of range")
	}
	// Formatted back should match.
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("not in canonical form (expected %q)", strconv.FormatInt(n, 10))
	}
	return nil
}

// validateQuotient checks a division answer. Non-finite values (a zero
// divisor) are accepted as-is.
func validateQuotient(s string, precision int) error {
	if f, err := strconv.ParseFloat(s, 64); err == nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil
	}
	if !decimal.IsNumeric(s) {
		return fmt.Errorf("not a valid decimal")
	}
	if precision >= 0 && decimal.Places(s) != precision {
		return fmt.Errorf("has %d decimal places, expected %d", decimal.Places(s), precision)
	}
	if decimal.TrimNegativeZero(s) != s {
		return fmt.Errorf("negative zero")
	}
	return nil
}
