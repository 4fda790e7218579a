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

func (s *JourneyScreen) renderResults(st pathway.State, width int) string {
	cw := contentWidth(width)
	sum := pathway.Summarize(s.cur, st)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(sum.Headline))
	b.WriteString("\n\n")

	if total := s.cur.Graph().Len(); total > 0 {
		label := fmt.Sprintf("Mastered %d of %d", len(sum.Mastered), total)
		b.WriteString(components.NewProgressBar(label, float64(len(sum.Mastered))/float64(total), false, cw).View())
		b.WriteString("\n\n")
	}

	if len(sum.Mastered) > 0 {
		b.WriteString(theme.Heading.Render("Mastered"))
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(layout.BulletList("  ✓", sum.Mastered)))
		b.WriteString("\n\n")
	}
	if len(sum.NeedsPractice) > 0 {
		b.WriteString(theme.Heading.Render("Keep practicing"))
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(layout.BulletList("  •", sum.NeedsPractice)))
		b.WriteString("\n\n")
	}

	if len(sum.Attempts) > 0 {
		b.WriteString(theme.Heading.Render("Your attempts"))
		b.WriteString("\n")
		for _, at := range sum.Attempts {
			mark := theme.Correct.Render("✓")
			if !at.Passed {
				mark = theme.Incorrect.Render("✗")
			}
			line := fmt.Sprintf("  %s %s  %s", mark, theme.Body.Render(at.Title),
				theme.Subtitle.Render(fmt.Sprintf("%d%%", at.Score)))
			if len(at.Incorrect) > 0 {
				line += theme.Hint.Render("  missed " + strings.Join(at.Incorrect, ", "))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.NextSteps) > 0 {
		steps := theme.Heading.Render("Next steps") + "\n" + layout.BulletList("→", sum.NextSteps)
		b.WriteString(theme.Callout.Width(cw).Render(steps))
		b.WriteString("\n")
	}

	return layout.Center(width, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
