package problemgen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/abhisek/mathcaptcha/internal/decimal"
)

// expressionRe matches "a op b" with optional surrounding whitespace and an
// optional trailing "= ?".
var expressionRe = regexp.MustCompile(`^\s*(-?\d+)\s*([+\-*/×÷])\s*(-?\d+)\s*(?:=\s*\??\s*)?$`)

// MathCheckValidator independently recomputes the answer from the
// expression text and compares it with the canonical answer.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question, in CheckInput) *ValidationError {
	a, b, op, err := ParseExpression(q.Expression)
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   err.Error(),
		}
	}
	if op != q.Operation || a != q.Operands[0] || b != q.Operands[1] {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expression %q disagrees with operands %d %s %d", q.Expression, q.Operands[0], q.Operation, q.Operands[1]),
		}
	}

	precision := in.Precision
	if precision < 0 {
		precision = decimal.Places(q.Answer)
	}
	computed := Build(a, b, op, precision)
	if computed.Answer != q.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but question claims %q", computed.Answer, q.Answer),
		}
	}
	return nil
}

// ParseExpression extracts the operands and operation from text such as
// "87 / 13", "12 × 3 = ?" or "-4 - -9".
func ParseExpression(text string) (a, b int, op Operation, err error) {
	m := expressionRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, "", fmt.Errorf("not an arithmetic expression: %q", text)
	}
	if a, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, "", fmt.Errorf("invalid left operand: %w", err)
	}
	if b, err = strconv.Atoi(m[3]); err != nil {
		return 0, 0, "", fmt.Errorf("invalid right operand: %w", err)
	}
	if op, err = ParseOperation(m[2]); err != nil {
		return 0, 0, "", err
	}
	if !inOperandBounds(a) || !inOperandBounds(b) {
		return 0, 0, "", fmt.Errorf("operands of %q exceed %d", text, MaxOperand)
	}
	return a, b, op, nil
}

// FromExpression parses text and builds its question with the given
// division precision.
func FromExpression(text string, precision int) (Question, error) {
	a, b, op, err := ParseExpression(text)
	if err != nil {
		return Question{}, err
	}
	return Build(a, b, op, precision), nil
}

func inOperandBounds(n int) bool {
	return n >= -MaxOperand && n <= MaxOperand
}
