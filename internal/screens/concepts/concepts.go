package concepts

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/conceptgraph"
	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// ConceptMapScreen lists a curriculum's concepts in remediation priority
// order.
type ConceptMapScreen struct {
	cur          *curriculum.Curriculum
	concepts     []conceptgraph.Concept
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*ConceptMapScreen)(nil)
var _ screen.KeyHintProvider = (*ConceptMapScreen)(nil)

// New creates a new ConceptMapScreen.
func New(cur *curriculum.Curriculum) *ConceptMapScreen {
	return &ConceptMapScreen{
		cur:      cur,
		concepts: cur.Graph().All(),
	}
}

func (s *ConceptMapScreen) Init() tea.Cmd {
	return nil
}

func (s *ConceptMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.concepts)-1 {
				s.cursor++
			}
		case "enter":
			return s, s.selectConcept()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ConceptMapScreen) View(width, height int) string {
	if len(s.concepts) == 0 {
		return ""
	}
	s.adjustScroll(height)

	var lines []string
	for i, c := range s.concepts {
		if i < s.scrollOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, s.renderRow(i, c, width))
	}
	return strings.Join(lines, "\n")
}

func (s *ConceptMapScreen) Title() string {
	return "Concept Map"
}

// KeyHints returns the key binding hints for the footer.
func (s *ConceptMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the concept under the cursor.
func (s *ConceptMapScreen) Selected() conceptgraph.Concept {
	return s.concepts[s.cursor]
}

func (s *ConceptMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ConceptMapScreen) selectConcept() tea.Cmd {
	detail := newConceptDetail(s.cur, s.concepts[s.cursor])
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func (s *ConceptMapScreen) renderRow(i int, c conceptgraph.Concept, width int) string {
	prefix := "    "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.cursor {
		prefix = "  ▸ "
		style = theme.Selected
	}

	line := style.Render(fmt.Sprintf("%s%d. %s", prefix, i+1, c.DisplayName()))

	var badges []string
	if _, ok := s.cur.RemedialFor(c.ID); !ok {
		badges = append(badges, theme.Warning.Render("no review set"))
	}
	if n := len(c.Prerequisites); n > 0 {
		badges = append(badges, theme.Hint.Render(fmt.Sprintf("needs %d", n)))
	}
	if len(badges) == 0 {
		return line
	}

	right := strings.Join(badges, "  ")
	pad := width - lipgloss.Width(line) - lipgloss.Width(right) - 4
	if pad < 2 {
		pad = 2
	}
	return line + strings.Repeat(" ", pad) + right
}
