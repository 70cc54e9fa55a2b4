package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/session"
	"github.com/abhisek/mathcaptcha/internal/ui/components"
	"github.com/abhisek/mathcaptcha/internal/ui/layout"
	"github.com/abhisek/mathcaptcha/internal/ui/theme"
)

func (m Model) title() string {
	if m.state.Phase == session.PhaseSummary {
		return "Summary"
	}
	return fmt.Sprintf("Question %d of %d", m.state.Index+1, len(m.state.Questions))
}

func (m Model) status() string {
	return fmt.Sprintf("%s  ✓ %d  ", m.state.Mode, m.state.TotalCorrect)
}

func (m Model) keyHints() []layout.KeyHint {
	switch {
	case m.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case m.state.Phase == session.PhaseSummary:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Exit"},
		}
	case m.state.Phase == session.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
			{Key: "Ctrl+C", Description: "Exit"},
		}
	}
}

func (m Model) content(width, height int) string {
	switch {
	case m.confirmQuit:
		return layout.Center(renderQuitConfirm(), width, height)
	case m.state.Phase == session.PhaseSummary:
		return layout.Center(renderSummary(session.BuildSummary(m.state), width), width, height)
	default:
		return layout.Center(m.renderQuestion(width), width, height)
	}
}

func (m Model) renderQuestion(width int) string {
	q := m.state.Current()
	if q == nil {
		return ""
	}

	results := make([]bool, 0, len(m.state.Attempts))
	for _, a := range m.state.Attempts {
		results = append(results, a.Result.Valid)
	}

	var b strings.Builder
	b.WriteString(components.NewProgressBar(results, len(m.state.Questions), min(width-8, 60)).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Expression.Render(q.Expression + " = ?"))
	b.WriteString("\n\n")
	b.WriteString("Answer: " + m.input.View())

	if m.state.Phase == session.PhaseFeedback {
		b.WriteString("\n\n")
		b.WriteString(renderFeedback(m.state.LastAttempt()))
	}
	return lipgloss.JoinVertical(lipgloss.Center, strings.Split(b.String(), "\n")...)
}

func renderFeedback(a *session.Attempt) string {
	if a == nil {
		return ""
	}
	if a.Result.Valid {
		return theme.Correct.Render("Correct!")
	}

	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Not quite"))
	b.WriteString("\n")
	if a.Result.Reason == answer.ReasonInvalidFormat {
		b.WriteString(theme.Hint.Render("That is not a plain number, e.g. 12 or -3 or 4.25"))
		b.WriteString("\n")
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Correct answer: %s", a.Question.Answer)))
	return b.String()
}

func renderQuitConfirm() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("End quiz early?"),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes, show my results"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"),
	)
}

func renderSummary(sum *session.Summary, width int) string {
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60

	lines := []string{
		theme.Title.Render("Quiz complete!"),
		"",
		theme.Subtitle.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)),
		"",
		fmt.Sprintf("Answered: %d/%d    Correct: %d    Accuracy: %.0f%%",
			sum.TotalAnswered, sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100),
		fmt.Sprintf("Average difficulty: %.1f", sum.AvgDifficulty),
		"",
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 40))),
	}
	for _, r := range sum.Operations {
		lines = append(lines, fmt.Sprintf("%-15s %d/%d correct", r.Operation.DisplayName(), r.Correct, r.Attempted))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
