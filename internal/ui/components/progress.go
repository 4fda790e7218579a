package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// StepBar shows one segment per question: done, current, upcoming.
type StepBar struct {
	Total   int
	Current int // 0-based; Total means all done
	Width   int
}

// View renders the segmented bar.
func (s StepBar) View() string {
	if s.Total <= 0 {
		return ""
	}
	seg := (s.Width - (s.Total - 1)) / s.Total
	seg = max(1, seg)

	parts := make([]string, s.Total)
	for i := range s.Total {
		color := theme.Border
		switch {
		case i < s.Current:
			color = theme.Success
		case i == s.Current:
			color = theme.Info
		}
		parts[i] = lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", seg))
	}
	return strings.Join(parts, " ")
}
