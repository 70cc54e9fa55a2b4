package problemgen

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Question represents a generated arithmetic question ready for display.
type Question struct {
	// ID uniquely identifies a generated question. Hand-built questions
	// may leave it empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Expression is the prompt shown to the user, e.g. "87 / 13".
	Expression string `json:"question" yaml:"question"`

	// Answer is the canonical expected answer. Its number of decimal
	// places is the precision a strict check demands from the user.
	// For division: "6.69". Otherwise an exact integer: "100", "-3".
	Answer string `json:"answer" yaml:"answer"`

	// NumericAnswer is Answer as a float64, derived at generation time.
	NumericAnswer float64 `json:"numericAnswer" yaml:"numericAnswer"`

	// Operation is the arithmetic operator of the expression.
	Operation Operation `json:"operation,omitempty" yaml:"operation,omitempty"`

	// Operands holds the left and right operand.
	Operands [2]int `json:"operands" yaml:"operands,flow"`
}

// MarshalJSON writes a non-finite NumericAnswer (division by zero) as null,
// which encoding/json cannot represent otherwise. Answer still reads
// "+Inf", "-Inf" or "NaN".
func (q Question) MarshalJSON() ([]byte, error) {
	type plain Question
	return json.Marshal(struct {
		plain
		NumericAnswer *float64 `json:"numericAnswer"`
	}{plain(q), finite(q.NumericAnswer)})
}

// finite returns &v, or nil when v is infinite or NaN.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Operation is one of the four arithmetic operators.
type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "/"
)

// AllOperations returns every supported operation in display order.
func AllOperations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// Valid reports whether op is a supported operation.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the operation.
func (op Operation) DisplayName() string {
	switch op {
	case OpAdd:
		return "addition"
	case OpSubtract:
		return "subtraction"
	case OpMultiply:
		return "multiplication"
	case OpDivide:
		return "division"
	default:
		return string(op)
	}
}

// ParseOperation accepts an operator symbol or its word form
// ("add", "sub", "mul", "div", "x", "÷"), ignoring case and surrounding
// spaces.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "plus":
		return OpAdd, nil
	case "-", "sub", "subtract", "minus":
		return OpSubtract, nil
	case "*", "x", "×", "mul", "multiply", "times":
		return OpMultiply, nil
	case "/", "÷", "div", "divide":
		return OpDivide, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// ParseOperations parses a list of operation names, rejecting duplicates.
func ParseOperations(names []string) ([]Operation, error) {
	ops := make([]Operation, 0, len(names))
	seen := make(map[Operation]bool, len(names))
	for _, n := range names {
		op, err := ParseOperation(n)
		if err != nil {
			return nil, err
		}
		if seen[op] {
			return nil, fmt.Errorf("duplicate operation %q", op)
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, nil
}
