package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
	"github.com/abhisek/mathcaptcha/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(keyPress(r))
	}
	return m
}

func newTestModel(t *testing.T, count int, mode answer.Mode) tea.Model {
	t.Helper()
	g, err := problemgen.New(problemgen.DefaultConfig(), problemgen.WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}
	v, err := answer.New(problemgen.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(Options{Generator: g, Validator: v, Count: count, Mode: mode, NumericOnly: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model
}

func state(m tea.Model) *session.State {
	return m.(Model).State()
}

func TestQuiz_FullRun(t *testing.T) {
	m := newTestModel(t, 2, answer.ModeStrict)

	q := state(m).Current()
	if q == nil {
		t.Fatal("expected a first question")
	}
	m = typeText(t, m, q.Answer)
	m, _ = m.Update(specialKey(tea.KeyEnter))

	if state(m).Phase != session.PhaseFeedback {
		t.Fatalf("Phase = %d, want PhaseFeedback", state(m).Phase)
	}
	if state(m).TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", state(m).TotalCorrect)
	}
	if !strings.Contains(m.(Model).render(), "Correct!") {
		t.Error("expected correct feedback in view")
	}

	// Any key continues.
	m, _ = m.Update(keyPress(' '))
	if state(m).Phase != session.PhaseActive || state(m).Index != 1 {
		t.Fatalf("expected second question, phase=%d index=%d", state(m).Phase, state(m).Index)
	}

	// Enter with no input is ignored.
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if state(m).Phase != session.PhaseActive {
		t.Fatal("empty submit must not record an attempt")
	}

	m = typeText(t, m, "999999")
	m, _ = m.Update(specialKey(tea.KeyEnter))
	if state(m).TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", state(m).TotalCorrect)
	}
	if !strings.Contains(m.(Model).render(), "Correct answer:") {
		t.Error("expected the correct answer in the feedback view")
	}

	m, _ = m.Update(keyPress('x'))
	if state(m).Phase != session.PhaseSummary {
		t.Fatalf("Phase = %d, want PhaseSummary", state(m).Phase)
	}
	if !strings.Contains(m.(Model).render(), "Quiz complete!") {
		t.Error("expected the summary view")
	}

	sum := m.(Model).Summary()
	if sum.TotalAnswered != 2 || sum.TotalCorrect != 1 || sum.Accuracy != 0.5 {
		t.Errorf("unexpected summary %+v", sum)
	}

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestQuiz_NumericOnlyInput(t *testing.T) {
	m := newTestModel(t, 1, answer.ModeStrict)
	m = typeText(t, m, "1a2")
	if got := m.(Model).input.Value(); got != "12" {
		t.Errorf("input = %q, want 12", got)
	}
}

func TestQuiz_FlexibleModeAcceptsPaddedAnswer(t *testing.T) {
	m := newTestModel(t, 1, answer.ModeFlexible)
	q := state(m).Current()

	padded := q.Answer
	if !strings.Contains(padded, ".") {
		padded += ".000"
	} else {
		padded += "000"
	}
	m = typeText(t, m, padded)
	m, _ = m.Update(specialKey(tea.KeyEnter))

	last := state(m).LastAttempt()
	if last == nil || !last.Result.Valid {
		t.Fatalf("expected %q to be accepted for %q, got %+v", padded, q.Answer, last)
	}
}

func TestQuiz_EscapeConfirm(t *testing.T) {
	m := newTestModel(t, 3, answer.ModeStrict)

	m, _ = m.Update(specialKey(tea.KeyEscape))
	if !m.(Model).confirmQuit {
		t.Fatal("expected the quit confirmation")
	}
	if !strings.Contains(m.(Model).render(), "End quiz early?") {
		t.Error("expected the confirmation view")
	}

	m, _ = m.Update(keyPress('n'))
	if m.(Model).confirmQuit || state(m).Phase != session.PhaseActive {
		t.Fatal("expected to resume the quiz")
	}

	m, _ = m.Update(specialKey(tea.KeyEscape))
	m, _ = m.Update(keyPress('y'))
	if state(m).Phase != session.PhaseSummary {
		t.Fatalf("Phase = %d, want PhaseSummary", state(m).Phase)
	}
	if state(m).Remaining() != 3 {
		t.Errorf("Remaining = %d, want 3", state(m).Remaining())
	}
}

func TestQuiz_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, 2, answer.ModeStrict)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if state(m).Phase != session.PhaseSummary {
		t.Error("expected the quiz to be ended")
	}
}

func TestQuiz_SmallTerminal(t *testing.T) {
	m := newTestModel(t, 1, answer.ModeStrict)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.(Model).render(), "Terminal too small!") {
		t.Error("expected the minimum size message")
	}
}

func TestNew_Errors(t *testing.T) {
	g, _ := problemgen.New(problemgen.DefaultConfig())
	v, _ := answer.New(problemgen.DefaultConfig())

	if _, err := New(Options{Validator: v, Count: 1}); err == nil {
		t.Error("expected an error without a generator")
	}
	if _, err := New(Options{Generator: g, Validator: v}); err == nil {
		t.Error("expected an error for zero questions")
	}

	m, err := New(Options{Generator: g, Validator: v, Count: 1})
	if err != nil {
		t.Fatal(err)
	}
	if m.State().Mode != answer.ModeStrict {
		t.Errorf("Mode = %q, want strict", m.State().Mode)
	}
	if m.State().ID == "" {
		t.Error("expected a quiz ID")
	}
}
