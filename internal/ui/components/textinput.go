package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcaptcha/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for answer entry.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	MaxWidth    int
	submitted   bool
	valid       bool
}

// NewTextInput creates a new styled text input. With numericOnly set,
// single-character keys other than digits, '-' and '.' are dropped.
func NewTextInput(placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
		MaxWidth:    maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && !isNumericKey(key[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func isNumericKey(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '.'
}

// View renders the text input, followed by a check or cross once
// submitted.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value without surrounding spaces.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Submit marks the input as submitted with a validation result. Further
// key presses are ignored.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Submitted reports whether Submit was called.
func (t TextInput) Submitted() bool {
	return t.submitted
}
