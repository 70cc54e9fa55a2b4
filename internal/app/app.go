package app

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/mathcaptcha/internal/answer"
	"github.com/abhisek/mathcaptcha/internal/problemgen"
	"github.com/abhisek/mathcaptcha/internal/session"
	"github.com/abhisek/mathcaptcha/internal/ui/components"
	"github.com/abhisek/mathcaptcha/internal/ui/layout"
)

// Options configures a quiz.
type Options struct {
	Generator *problemgen.Generator
	Validator *answer.Validator
	Count     int
	Mode      answer.Mode

	// NumericOnly drops non-numeric keys from the answer field.
	NumericOnly bool
}

// Model is the root Bubble Tea model of the quiz.
type Model struct {
	state       *session.State
	validator   *answer.Validator
	input       components.TextInput
	numericOnly bool
	confirmQuit bool
	now         func() time.Time
	width       int
	height      int
}

// New generates the questions and creates the quiz model.
func New(opts Options) (Model, error) {
	if opts.Generator == nil || opts.Validator == nil {
		return Model{}, errors.New("quiz needs a generator and a validator")
	}
	if opts.Count < 1 {
		return Model{}, fmt.Errorf("question count must be at least 1, got %d", opts.Count)
	}
	if opts.Mode == "" {
		opts.Mode = answer.ModeStrict
	}

	m := Model{
		validator:   opts.Validator,
		numericOnly: opts.NumericOnly,
		now:         time.Now,
	}
	m.state = session.NewState(uuid.NewString(), opts.Mode, opts.Generator.GenerateN(opts.Count), m.now())
	m.input = m.newInput()
	return m, nil
}

func (m Model) newInput() components.TextInput {
	return components.NewTextInput("Type your answer...", m.numericOnly, 24)
}

// State returns the quiz state.
func (m Model) State() *session.State {
	return m.state
}

// Summary builds the summary of the quiz so far.
func (m Model) Summary() *session.Summary {
	return session.BuildSummary(m.state)
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.state.End(m.now())
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.state.Phase == session.PhaseActive && !m.confirmQuit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirmQuit {
		switch key {
		case "y", "Y":
			m.confirmQuit = false
			m.state.End(m.now())
		case "n", "N", "esc":
			m.confirmQuit = false
		}
		return m, nil
	}

	switch m.state.Phase {
	case session.PhaseSummary:
		switch key {
		case "enter", "esc", "q":
			return m, tea.Quit
		}
		return m, nil

	case session.PhaseFeedback:
		if m.state.Advance(m.now()) {
			m.input = m.newInput()
			return m, m.input.Init()
		}
		return m, nil

	default:
		switch key {
		case "esc":
			m.confirmQuit = true
			return m, nil
		case "enter":
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// submit validates the typed answer. Empty input is ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	q := m.state.Current()
	text := m.input.Value()
	if q == nil || text == "" {
		return m, nil
	}

	res := m.validator.Check(m.state.Mode, *q, text)
	m.state.Record(text, res, m.now())
	m.input.Submit(res.Valid)
	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.title(), m.status(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	return layout.RenderFrame(header, m.content(m.width, contentHeight), footer, m.width, m.height)
}

// Run starts the quiz and returns its summary once the program exits.
func Run(opts Options) (*session.Summary, error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("run quiz: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Summary(), nil
	}
	return m.Summary(), nil
}
