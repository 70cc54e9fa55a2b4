// Package decimal implements the string-level number handling used to
// compare free-text answers: the numeric pattern, half-up rounding with
// unbounded carry, and normalisation.
package decimal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a string is not a plain decimal number.
var ErrMalformed = errors.New("malformed numeric string")

// numericPattern accepts an optional minus sign, one or more digits and an
// optional fraction. No exponents, no grouping separators, no plus sign.
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// IsNumeric reports whether s is a plain decimal number such as "-12.50".
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// Places returns the number of digits after the decimal point, or 0 when s
// has no decimal point.
func Places(s string) int {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return len(s) - i - 1
}

// IsZero reports whether every digit of s is zero.
func IsZero(s string) bool {
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return false
		}
	}
	return true
}

// RoundHalfUp rounds s to exactly places fractional digits. A tie (digit 5
// at position places) rounds away from zero. Carry propagates through the
// fraction into the integer part with no length limit, so integers beyond
// float64 precision survive unchanged. The sign of a zero result is dropped.
func RoundHalfUp(s string, places int) (string, error) {
	if places < 0 {
		return "", fmt.Errorf("negative decimal places %d", places)
	}
	if !IsNumeric(s) {
		return "", fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	negative := strings.HasPrefix(s, "-")
	magnitude := strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(magnitude, ".")
	if len(fracPart) < places+1 {
		fracPart += strings.Repeat("0", places+1-len(fracPart))
	}

	digits := []byte(intPart + fracPart[:places])
	if fracPart[places] >= '5' {
		digits = increment(digits)
	}

	split := len(digits) - places
	out := string(digits[:split])
	if places > 0 {
		out += "." + string(digits[split:])
	}

	if negative && !IsZero(out) {
		out = "-" + out
	}
	return out, nil
}

// increment adds one to an unsigned decimal digit string, growing it by a
// leading '1' when every digit carries.
func increment(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}

// Normalize re-renders a number without insignificant zeros: "10.123000"
// becomes "10.123", "5.00" becomes "5", "007" becomes "7" and "-0.0"
// becomes "0". Inputs outside the plain pattern but accepted by
// strconv.ParseFloat ("1e3", "5.") are formatted from their float value.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}

	negative := strings.HasPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	fracPart = strings.TrimRight(fracPart, "0")

	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if negative && !IsZero(out) {
		out = "-" + out
	}
	return out, nil
}

// TrimNegativeZero drops the minus sign from a zero value such as "-0.00".
func TrimNegativeZero(s string) string {
	if strings.HasPrefix(s, "-") && IsNumeric(s) && IsZero(s) {
		return s[1:]
	}
	return s
}
