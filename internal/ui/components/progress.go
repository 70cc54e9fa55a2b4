package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcaptcha/internal/ui/theme"
)

// ProgressBar shows one segment per question: green for a correct
// answer, red for a wrong one and dim for questions still pending.
type ProgressBar struct {
	Results []bool // verdicts of answered questions, in order
	Total   int
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(results []bool, total, width int) ProgressBar {
	return ProgressBar{Results: results, Total: total, Width: width}
}

// View renders the progress bar followed by an "answered/total" counter.
func (p ProgressBar) View() string {
	if p.Total <= 0 {
		return ""
	}

	counter := fmt.Sprintf("  %d/%d", len(p.Results), p.Total)
	barWidth := p.Width - len(counter)
	if barWidth < p.Total {
		barWidth = p.Total
	}
	segment := barWidth / p.Total

	var b strings.Builder
	for i := range p.Total {
		style := theme.ProgressEmpty
		if i < len(p.Results) {
			if p.Results[i] {
				style = theme.ProgressCorrect
			} else {
				style = theme.ProgressWrong
			}
		}
		b.WriteString(style.Render(strings.Repeat(" ", segment)))
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter))
	return b.String()
}
