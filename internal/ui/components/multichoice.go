package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// MultiChoice renders a question's options with a highlight cursor and the
// learner's recorded selection. It only tracks the cursor; selections live
// in the quiz attempt.
type MultiChoice struct {
	Options  []quiz.Option
	Cursor   int
	Selected string // option id, empty if none
}

// NewMultiChoice creates a multiple-choice list positioned on the selected
// option, or the first one.
func NewMultiChoice(options []quiz.Option, selected string) MultiChoice {
	m := MultiChoice{Options: options, Selected: selected}
	for i, o := range options {
		if o.ID == selected {
			m.Cursor = i
		}
	}
	return m
}

// Update moves the cursor on up/down.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}
	return m, nil
}

// Highlighted returns the option under the cursor.
func (m MultiChoice) Highlighted() (quiz.Option, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Options) {
		return quiz.Option{}, false
	}
	return m.Options[m.Cursor], true
}

// OptionAt returns the option for a 1-based number key.
func (m MultiChoice) OptionAt(n int) (quiz.Option, bool) {
	if n < 1 || n > len(m.Options) {
		return quiz.Option{}, false
	}
	return m.Options[n-1], true
}

// View renders the option list.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if opt.ID == m.Selected {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%d) %s %s", prefix, i+1, mark, opt.Text)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case opt.ID == m.Selected:
			style = theme.Selected
		case i == m.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
