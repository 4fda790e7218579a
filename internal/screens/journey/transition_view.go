package journey

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

const transitionHeadline = "Building Your Personalized Learning Path..."

func (s *JourneyScreen) renderTransition(st pathway.State, width int) string {
	cw := contentWidth(width)
	sum := pathway.Summarize(s.cur, st)

	var b strings.Builder
	b.WriteString(s.spinner.View() + " " + theme.Title.Render(transitionHeadline))
	b.WriteString("\n\n")

	scoreStyle := theme.Incorrect
	if sum.DiagnosticPassed {
		scoreStyle = theme.Correct
	}
	b.WriteString(theme.Body.Render("Diagnostic score: "))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d%%", sum.DiagnosticScore)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(sum.DiagnosticScore)/100, false, cw/2).View())
	b.WriteString("\n\n")

	if len(sum.Understands) > 0 {
		b.WriteString(theme.Heading.Render("You understand"))
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(layout.BulletList("  ✓", sum.Understands)))
		b.WriteString("\n\n")
	}
	if len(sum.NeedsSupport) > 0 {
		b.WriteString(theme.Heading.Render("Needs support"))
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(layout.BulletList("  •", sum.NeedsSupport)))
		b.WriteString("\n\n")
	}

	if len(sum.LearningPath) > 0 {
		path := theme.Heading.Render("Your learning path") + "\n" + layout.BulletList("→", sum.LearningPath)
		b.WriteString(theme.Callout.Width(cw).Render(path))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Hint.Render("Press Enter to begin now"))

	return layout.Center(width, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
