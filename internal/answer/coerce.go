package answer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// coerce renders a user answer as text. Only strings and numbers are
// accepted; nil and every other type report ok == false.
func coerce(input any) (text string, ok bool) {
	switch v := input.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// canonical returns the question's expected answer text. Hand-built
// questions without an Answer fall back to NumericAnswer.
func canonical(q problemgen.Question) string {
	if s := strings.TrimSpace(q.Answer); s != "" {
		return s
	}
	return strconv.FormatFloat(q.NumericAnswer, 'f', -1, 64)
}

// parseFinite parses s and reports whether it is a finite float64.
// Digit strings too long for float64 parse to ±Inf and are not finite.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
