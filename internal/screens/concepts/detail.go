package concepts

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/conceptgraph"
	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// ConceptDetailScreen shows prerequisites, dependents and practice material
// for one concept.
type ConceptDetailScreen struct {
	cur     *curriculum.Curriculum
	concept conceptgraph.Concept
}

var _ screen.Screen = (*ConceptDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ConceptDetailScreen)(nil)

func newConceptDetail(cur *curriculum.Curriculum, c conceptgraph.Concept) *ConceptDetailScreen {
	return &ConceptDetailScreen{cur: cur, concept: c}
}

func (d *ConceptDetailScreen) Init() tea.Cmd { return nil }
func (d *ConceptDetailScreen) Title() string { return d.concept.DisplayName() }

func (d *ConceptDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *ConceptDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *ConceptDetailScreen) View(width, height int) string {
	c := d.concept
	cw := min(width-8, 70)
	g := d.cur.Graph()

	var b strings.Builder
	b.WriteString(theme.Title.Render("  " + c.DisplayName()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("  " + c.ID))
	b.WriteString("\n\n")

	if c.Description != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw).PaddingLeft(2).Render(c.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(section("Prerequisites", names(g.Prerequisites(c.ID))))
	b.WriteString(section("Unlocks", names(g.Dependents(c.ID))))

	var tagged []string
	for _, q := range d.cur.Diagnostic.Questions {
		if d.cur.ConceptMap[q.ID] == c.ID {
			tagged = append(tagged, fmt.Sprintf("%s  %s", q.ID, q.Prompt))
		}
	}
	b.WriteString(section("Diagnostic questions", tagged))

	if set, ok := d.cur.RemedialFor(c.ID); ok {
		b.WriteString(section("Concept review", []string{
			fmt.Sprintf("%s (%d questions)", set.Title, len(set.Questions)),
		}))
	} else {
		b.WriteString(theme.Warning.Render("  No concept review set. A learner who misses this concept cannot continue."))
		b.WriteString("\n")
	}

	return b.String()
}

func section(title string, items []string) string {
	if len(items) == 0 {
		items = []string{"none"}
	}
	return theme.Heading.Render("  "+title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(layout.BulletList("    •", items)) + "\n\n"
}

func names(cs []conceptgraph.Concept) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.DisplayName()
	}
	return out
}
