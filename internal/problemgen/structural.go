package problemgen

// maxExpressionLen bounds the rendered expression.
const maxExpressionLen = 64

// StructuralValidator checks that required fields are present and the
// operation is one we know.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ CheckInput) *ValidationError {
	if q.Expression == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question is empty",
		}
	}
	if len(q.Expression) > maxExpressionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question exceeds 64 characters",
		}
	}
	if q.Answer == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer is empty",
		}
	}
	if !q.Operation.Valid() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "operation must be one of \"+\", \"-\", \"*\", \"/\"",
		}
	}
	return nil
}
