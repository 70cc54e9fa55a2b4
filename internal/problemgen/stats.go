package problemgen

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Operands names the two operands of a question.
type Operands struct {
	Num1 int `json:"num1" yaml:"num1"`
	Num2 int `json:"num2" yaml:"num2"`
}

// Stats summarises a question for analytics and display.
type Stats struct {
	Operands    Operands  `json:"operands" yaml:"operands"`
	Result      float64   `json:"result" yaml:"result"`
	Operation   Operation `json:"operation" yaml:"operation"`
	Difficulty  int       `json:"difficulty" yaml:"difficulty"`
	HasDecimals bool      `json:"hasDecimals" yaml:"hasDecimals"`
}

// MarshalJSON writes a non-finite Result as null.
func (s Stats) MarshalJSON() ([]byte, error) {
	type plain Stats
	return json.Marshal(struct {
		plain
		Result *float64 `json:"result"`
	}{plain(s), finite(s.Result)})
}

const (
	minDifficulty = 1
	maxDifficulty = 10
)

// QuestionStats computes the Stats of q. The result is read from the
// canonical answer when it parses, otherwise from NumericAnswer.
func QuestionStats(q Question) Stats {
	result := q.NumericAnswer
	if v, err := strconv.ParseFloat(strings.TrimSpace(q.Answer), 64); err == nil {
		result = v
	}

	hasDecimals := !math.IsInf(result, 0) && !math.IsNaN(result) && math.Trunc(result) != result

	return Stats{
		Operands:    Operands{Num1: q.Operands[0], Num2: q.Operands[1]},
		Result:      result,
		Operation:   q.Operation,
		Difficulty:  difficulty(q.Operation, q.Operands, result, hasDecimals),
		HasDecimals: hasDecimals,
	}
}

// difficulty scores a question on a 1-10 scale:
//
//	operation base   + 1, - 2, * 3, / 4
//	magnitude        largest |operand| > 10: +1, > 50: +2
//	decimals         +2 when the result has a fractional part
//	large result     +1 when |result| >= 1000
func difficulty(op Operation, operands [2]int, result float64, hasDecimals bool) int {
	score := operationBase(op)

	largest := max(absInt(operands[0]), absInt(operands[1]))
	switch {
	case largest > 50:
		score += 2
	case largest > 10:
		score++
	}

	if hasDecimals {
		score += 2
	}
	if math.Abs(result) >= 1000 {
		score++
	}

	return min(max(score, minDifficulty), maxDifficulty)
}

func operationBase(op Operation) int {
	switch op {
	case OpAdd:
		return 1
	case OpSubtract:
		return 2
	case OpMultiply:
		return 3
	case OpDivide:
		return 4
	default:
		return 1
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
