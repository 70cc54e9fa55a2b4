package session

import (
	"time"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// OperationResult tracks per-operation performance within a quiz.
type OperationResult struct {
	Operation problemgen.Operation
	Attempted int
	Correct   int
}

// Accuracy returns Correct / Attempted, or 0 with no attempts.
func (r OperationResult) Accuracy() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempted)
}

// Summary holds the data displayed at the end of a quiz.
type Summary struct {
	ID             string
	Duration       time.Duration
	TotalQuestions int
	TotalAnswered  int
	TotalCorrect   int
	Accuracy       float64 // TotalCorrect / TotalAnswered
	AvgDifficulty  float64
	Operations     []OperationResult
}

// BuildSummary creates a Summary from the quiz state. Operations appear
// in AllOperations order and only when attempted.
func BuildSummary(state *State) *Summary {
	byOp := make(map[problemgen.Operation]*OperationResult)
	var difficulty int
	for _, a := range state.Attempts {
		r, ok := byOp[a.Question.Operation]
		if !ok {
			r = &OperationResult{Operation: a.Question.Operation}
			byOp[a.Question.Operation] = r
		}
		r.Attempted++
		if a.Result.Valid {
			r.Correct++
		}
		difficulty += problemgen.QuestionStats(a.Question).Difficulty
	}

	var results []OperationResult
	for _, op := range problemgen.AllOperations() {
		if r, ok := byOp[op]; ok {
			results = append(results, *r)
		}
	}

	answered := len(state.Attempts)
	var accuracy, avg float64
	if answered > 0 {
		accuracy = float64(state.TotalCorrect) / float64(answered)
		avg = float64(difficulty) / float64(answered)
	}

	return &Summary{
		ID:             state.ID,
		Duration:       state.Elapsed,
		TotalQuestions: len(state.Questions),
		TotalAnswered:  answered,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       accuracy,
		AvgDifficulty:  avg,
		Operations:     results,
	}
}
