package answer

import "github.com/abhisek/mathcaptcha/internal/problemgen"

// The package-level functions read the process-wide configuration from
// problemgen.GetConfig on every call and report to no observer.

func fromProcessConfig() *Validator {
	return &Validator{cfg: problemgen.GetConfig(), observer: nopObserver{}}
}

// Strict validates input against q with Validator.Strict.
func Strict(q problemgen.Question, input any) bool {
	return fromProcessConfig().Strict(q, input)
}

// Validate is Strict.
func Validate(q problemgen.Question, input any) bool {
	return Strict(q, input)
}

// CheckIfSolvedCorrectly is Strict.
func CheckIfSolvedCorrectly(q problemgen.Question, input any) bool {
	return Strict(q, input)
}

// Flexible validates input against q with Validator.Flexible.
func Flexible(q problemgen.Question, input any) bool {
	return fromProcessConfig().Flexible(q, input)
}

// WithFeedback validates input against q with Validator.WithFeedback.
func WithFeedback(q problemgen.Question, input any) Result {
	return fromProcessConfig().WithFeedback(q, input)
}

// Batch validates pairs with Validator.Batch.
func Batch(pairs []Pair) []Record {
	return fromProcessConfig().Batch(pairs)
}
