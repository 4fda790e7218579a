package journey

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

func renderError(width, height int, err error) string {
	msg := theme.Incorrect.Render("This journey cannot continue") + "\n\n" +
		theme.Body.Width(contentWidth(width)).Render(err.Error()) + "\n\n" +
		theme.Hint.Render("Press Esc to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func renderQuitConfirm(width int) string {
	box := theme.Card.Render(
		theme.Heading.Render("Leave this journey?") + "\n\n" +
			theme.Subtitle.Render("Your answers so far will be lost.") + "\n\n" +
			theme.Body.Render("Y to leave, N to keep going"))
	return "\n\n" + layout.Center(width, box)
}
