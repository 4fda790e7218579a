package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/screens/concepts"
	"github.com/abhisek/pathwise/internal/screens/journey"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// HomeScreen introduces the curriculum and starts journeys.
type HomeScreen struct {
	cur  *curriculum.Curriculum
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Each START JOURNEY creates a fresh journey
// with opts.
func New(cur *curriculum.Curriculum, opts journey.Options) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START JOURNEY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: journey.New(cur, opts)}
			}
		}},
		{Label: "CONCEPT MAP", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: concepts.New(cur)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		cur:  cur,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string

	title := theme.Title.Render(h.cur.Title)
	if h.cur.Description != "" {
		title += "\n" + theme.Subtitle.Render(h.cur.Description)
	}
	sections = append(sections, title)

	sections = append(sections, components.Panel(h.stats(), cw))

	buttons := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		buttons[i] = components.MenuButton(item.Label, i == h.menu.Selected, cw)
	}
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Center, buttons...))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) stats() string {
	t := h.cur.Thresholds
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%d concepts  ·  %d diagnostic questions\npass %d%%  ·  review mastery %d%%",
		h.cur.Graph().Len(), len(h.cur.Diagnostic.Questions), t.DiagnosticPass, t.Remediation))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
