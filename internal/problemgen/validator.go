package problemgen

import "fmt"

// Validator checks a question for internal consistency.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "math-check", "answer-format".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *Question, in CheckInput) *ValidationError
}

// CheckInput carries the context a Validator needs.
type CheckInput struct {
	// Precision is the expected number of decimal places of a division
	// answer. A negative value accepts any precision.
	Precision int
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&AnswerFormatValidator{},
		&MathCheckValidator{},
	}
}

// Check runs the validators in order and returns the first failure, or
// nil. With no validators given, DefaultValidators is used.
func Check(q *Question, in CheckInput, validators ...Validator) error {
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	for _, v := range validators {
		if verr := v.Validate(q, in); verr != nil {
			return verr
		}
	}
	return nil
}
