package session

import (
	"time"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// Phase represents the current phase of a quiz.
type Phase int

const (
	PhaseActive   Phase = iota // Waiting for an answer
	PhaseFeedback              // Showing the verdict for the last answer
	PhaseSummary               // All questions answered or quiz ended early
)

// Attempt is one answered question.
type Attempt struct {
	Question problemgen.Question
	Input    string
	Result   answer.Result
	Duration time.Duration
}

// State tracks the runtime state of a quiz.
type State struct {
	// ID is the UUID of this quiz.
	ID string

	// Mode is the validation mode applied to every answer.
	Mode answer.Mode

	// Questions is the full question list, fixed at start.
	Questions []problemgen.Question

	// Index points at the current question in Questions.
	Index int

	// Attempts holds one entry per answered question, in order.
	Attempts []Attempt

	// TotalCorrect is the count of valid answers so far.
	TotalCorrect int

	// StartTime is when the quiz began.
	StartTime time.Time

	// QuestionStartTime is when the current question was first displayed.
	QuestionStartTime time.Time

	// Elapsed is the duration from StartTime to the end of the quiz.
	Elapsed time.Duration

	// Phase is the current quiz phase.
	Phase Phase
}

// NewState creates a quiz over questions. An empty question list starts
// in PhaseSummary.
func NewState(id string, mode answer.Mode, questions []problemgen.Question, now time.Time) *State {
	s := &State{
		ID:                id,
		Mode:              mode,
		Questions:         questions,
		StartTime:         now,
		QuestionStartTime: now,
		Phase:             PhaseActive,
	}
	if len(questions) == 0 {
		s.Phase = PhaseSummary
	}
	return s
}

// Current returns the question awaiting an answer, or nil when the quiz
// is over.
func (s *State) Current() *problemgen.Question {
	if s.Index >= len(s.Questions) || s.Phase == PhaseSummary {
		return nil
	}
	return &s.Questions[s.Index]
}

// LastAttempt returns the most recent attempt, or nil before the first.
func (s *State) LastAttempt() *Attempt {
	if len(s.Attempts) == 0 {
		return nil
	}
	return &s.Attempts[len(s.Attempts)-1]
}

// Record stores the verdict for the current question and moves to
// PhaseFeedback. It is a no-op outside PhaseActive.
func (s *State) Record(input string, res answer.Result, now time.Time) {
	q := s.Current()
	if q == nil || s.Phase != PhaseActive {
		return
	}
	s.Attempts = append(s.Attempts, Attempt{
		Question: *q,
		Input:    input,
		Result:   res,
		Duration: now.Sub(s.QuestionStartTime),
	})
	if res.Valid {
		s.TotalCorrect++
	}
	s.Phase = PhaseFeedback
}

// Advance moves past the feedback to the next question. It returns false
// and ends the quiz when no questions remain.
func (s *State) Advance(now time.Time) bool {
	s.Index++
	if s.Index >= len(s.Questions) {
		s.End(now)
		return false
	}
	s.Phase = PhaseActive
	s.QuestionStartTime = now
	return true
}

// End stops the quiz, leaving unanswered questions unanswered. Calling
// End again keeps the first Elapsed.
func (s *State) End(now time.Time) {
	if s.Phase == PhaseSummary && s.Elapsed > 0 {
		return
	}
	s.Phase = PhaseSummary
	s.Elapsed = now.Sub(s.StartTime)
}

// Remaining returns the number of questions not yet answered.
func (s *State) Remaining() int {
	return len(s.Questions) - len(s.Attempts)
}
