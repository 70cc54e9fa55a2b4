package answer

import "github.com/abhisek/mathcaptcha/internal/problemgen"

// Pair is a question and the answer submitted for it.
type Pair struct {
	Question problemgen.Question `json:"question" yaml:"question"`
	Answer   any                 `json:"answer" yaml:"answer"`
}

// Record is the strict verdict for one Pair.
type Record struct {
	Index      int    `json:"index" yaml:"index"`
	Expression string `json:"question" yaml:"question"`
	Expected   string `json:"expected" yaml:"expected"`
	UserAnswer any    `json:"userAnswer" yaml:"userAnswer"`
	Valid      bool   `json:"isValid" yaml:"isValid"`
}

// Batch validates every pair strictly and returns one Record per pair in
// input order. A failing pair does not stop the rest.
func (v *Validator) Batch(pairs []Pair) []Record {
	out := make([]Record, len(pairs))
	for i, p := range pairs {
		out[i] = Record{
			Index:      i,
			Expression: p.Question.Expression,
			Expected:   canonical(p.Question),
			UserAnswer: p.Answer,
			Valid:      v.Strict(p.Question, p.Answer),
		}
	}
	return out
}

// Summary counts the valid records.
func Summary(records []Record) (valid, total int) {
	for _, r := range records {
		if r.Valid {
			valid++
		}
	}
	return valid, len(records)
}
