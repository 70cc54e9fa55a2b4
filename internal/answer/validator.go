// Package answer decides whether a free-text answer matches a question's
// canonical answer, either by exact decimal rounding (strict) or by
// numeric tolerance (flexible).
package answer

import (
	"math"
	"strings"

	"github.com/abhisek/mathcaptcha/internal/decimal"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// Observer receives one event per validated answer.
type Observer interface {
	AnswerChecked(mode Mode, reason Reason)
}

type nopObserver struct{}

func (nopObserver) AnswerChecked(Mode, Reason) {}

// Validator compares answers using the tolerance and division precision
// of a fixed configuration. It holds no mutable state.
type Validator struct {
	cfg      problemgen.Config
	observer Observer
}

// Option configures a Validator.
type Option func(*Validator)

// WithObserver registers an Observer for validation events.
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observer = o
		}
	}
}

// New creates a Validator for cfg.
func New(cfg problemgen.Config, opts ...Option) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v := &Validator{cfg: cfg.Clone(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Strict reports whether input, rounded half-up to the canonical answer's
// decimal places, equals the canonical answer exactly.
//
// An integer canonical answer admits no decimal point at all, so "5.0" is
// wrong for "5". A negative input with a decimal point is always rejected
// when the canonical answer has decimals, even if numerically equal.
func (v *Validator) Strict(q problemgen.Question, input any) bool {
	reason := strict(canonical(q), input)
	v.observer.AnswerChecked(ModeStrict, reason)
	return reason == ReasonCorrect
}

// Validate is Strict.
func (v *Validator) Validate(q problemgen.Question, input any) bool {
	return v.Strict(q, input)
}

// CheckIfSolvedCorrectly is Strict.
func (v *Validator) CheckIfSolvedCorrectly(q problemgen.Question, input any) bool {
	return v.Strict(q, input)
}

// Flexible reports whether input is within the configured tolerance of
// the expected value. Division values are first rounded to two places
// beyond the configured precision.
func (v *Validator) Flexible(q problemgen.Question, input any) bool {
	res := v.compare(q, input)
	v.observer.AnswerChecked(ModeFlexible, res.Reason)
	return res.Valid
}

// WithFeedback is Flexible returning the full Result.
func (v *Validator) WithFeedback(q problemgen.Question, input any) Result {
	res := v.compare(q, input)
	v.observer.AnswerChecked(ModeFeedback, res.Reason)
	return res
}

// Check dispatches to the validator for mode. Unknown modes use Strict.
func (v *Validator) Check(mode Mode, q problemgen.Question, input any) Result {
	switch mode {
	case ModeFlexible, ModeFeedback:
		res := v.compare(q, input)
		v.observer.AnswerChecked(mode, res.Reason)
		return res
	default:
		want := canonical(q)
		text, _ := coerce(input)
		reason := strict(want, input)
		v.observer.AnswerChecked(ModeStrict, reason)
		return Result{
			Valid:     reason == ReasonCorrect,
			Reason:    reason,
			UserInput: strings.TrimSpace(text),
			Expected:  want,
		}
	}
}

func strict(want string, input any) Reason {
	text, ok := coerce(input)
	if !ok {
		return ReasonInvalidFormat
	}
	text = strings.TrimSpace(text)
	if !decimal.IsNumeric(text) {
		return ReasonInvalidFormat
	}

	places := decimal.Places(want)
	hasPoint := strings.Contains(text, ".")
	if places == 0 && hasPoint {
		return ReasonIncorrect
	}
	if places > 0 && hasPoint && strings.HasPrefix(text, "-") {
		return ReasonIncorrect
	}

	rounded, err := decimal.RoundHalfUp(text, places)
	if err != nil || rounded != want {
		return ReasonIncorrect
	}
	return ReasonCorrect
}

func (v *Validator) compare(q problemgen.Question, input any) Result {
	text, ok := coerce(input)
	res := Result{
		UserInput: strings.TrimSpace(text),
		Expected:  canonical(q),
	}
	if !ok || !decimal.IsNumeric(res.UserInput) {
		res.Reason = ReasonInvalidFormat
		return res
	}

	user, ok := parseFinite(res.UserInput)
	if !ok {
		res.Reason = ReasonUserNotFinite
		return res
	}
	expected, ok := parseFinite(res.Expected)
	if !ok {
		res.Reason = ReasonExpectedNotFinite
		return res
	}
	userNumber, expectedNumber := user, expected
	res.UserNumber = &userNumber
	res.ExpectedNumber = &expectedNumber

	if q.Operation == problemgen.OpDivide {
		places := v.cfg.DivisionPrecision + 2
		user = roundTo(user, places)
		expected = roundTo(expected, places)
	}

	if math.Abs(user-expected) <= v.cfg.Tolerance {
		res.Valid = true
		res.Reason = ReasonCorrect
	} else {
		res.Reason = ReasonIncorrect
	}
	return res
}
