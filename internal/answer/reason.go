package answer

import "fmt"

// Reason explains the outcome of a validation.
type Reason string

const (
	ReasonInvalidFormat     Reason = "Invalid numeric format"
	ReasonUserNotFinite     Reason = "User input is not a finite number"
	ReasonExpectedNotFinite Reason = "Expected answer is not a finite number"
	ReasonCorrect           Reason = "Correct"
	ReasonIncorrect         Reason = "Incorrect value"
)

// Mode selects how an answer is compared with the canonical answer.
type Mode string

const (
	ModeStrict   Mode = "strict"
	ModeFlexible Mode = "flexible"
	ModeFeedback Mode = "feedback"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeStrict, ModeFlexible, ModeFeedback:
		return m, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q (want strict, flexible or feedback)", s)
	}
}

// Result is the structured outcome of WithFeedback.
type Result struct {
	Valid     bool   `json:"isValid" yaml:"isValid"`
	Reason    Reason `json:"reason" yaml:"reason"`
	UserInput string `json:"userInput" yaml:"userInput"`
	Expected  string `json:"expected" yaml:"expected"`

	// UserNumber and ExpectedNumber are set only once both values parsed
	// as finite numbers.
	UserNumber     *float64 `json:"userNumber,omitempty" yaml:"userNumber,omitempty"`
	ExpectedNumber *float64 `json:"expectedNumber,omitempty" yaml:"expectedNumber,omitempty"`
}
