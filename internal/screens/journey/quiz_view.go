package journey

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

func (s *JourneyScreen) renderQuiz(st pathway.State, width int) string {
	a, ok := s.journey.Attempt()
	if !ok {
		return ""
	}
	cw := contentWidth(width)

	set := s.cur.Diagnostic
	if st.Stage == pathway.StageConceptReview {
		set = st.Remedial
	}

	var b strings.Builder

	if fb := s.reviewFeedback(st, a); fb != "" {
		b.WriteString(fb)
		b.WriteString("\n\n")
	}
	if set.Heading != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(set.Heading))
		b.WriteString("\n")
	}
	b.WriteString(theme.Title.Render(set.Title))
	b.WriteString("\n")
	if set.Description != "" {
		b.WriteString(theme.Subtitle.Width(cw).Render(set.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	done := a.Cursor()
	if a.Phase() == quiz.PhaseShowingExplanation {
		done++
	}
	b.WriteString(components.StepBar{Total: a.Len(), Current: done, Width: cw}.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", a.Cursor()+1, a.Len())))
	b.WriteString("\n\n")

	q := a.Current()
	prompt := theme.Heading.Width(cw - 6).Render(q.Prompt)
	b.WriteString(theme.Card.Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if a.Phase() == quiz.PhaseShowingExplanation {
		b.WriteString("\n")
		b.WriteString(renderExplanation(q, cw))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.NewButton(buttonLabel(a), a.CanAdvance()).View())
	if s.notice != "" {
		b.WriteString("  ")
		b.WriteString(theme.Warning.Render(s.notice))
	}

	return layout.Center(width, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// reviewFeedback reports how the previous concept review went, shown on the
// first question of the next one.
func (s *JourneyScreen) reviewFeedback(st pathway.State, a quiz.Attempt) string {
	prev := s.lastResult
	if prev == nil || prev.Stage != pathway.StageConceptReview || prev.Concept == st.Concept {
		return ""
	}
	if st.Stage != pathway.StageConceptReview || a.Cursor() != 0 || a.Phase() != quiz.PhaseAnswering {
		return ""
	}
	label := s.cur.Label(prev.Concept)
	next := s.cur.Label(st.Concept)
	if prev.Result.Passed(s.cur.Thresholds.Remediation) {
		return theme.Correct.Render(fmt.Sprintf("Great job on %s! (%d%%)", label, prev.Result.Score)) + "\n" +
			theme.Subtitle.Render(fmt.Sprintf("Let's work on %s next.", next))
	}
	return theme.Warning.Render(fmt.Sprintf("%s needs more practice (%d%%)", label, prev.Result.Score)) + "\n" +
		theme.Subtitle.Render(fmt.Sprintf("Moving on to %s.", next))
}

func renderExplanation(q quiz.Question, width int) string {
	head := theme.Incorrect.Render("Not quite.")
	if o, ok := q.CorrectOption(); ok {
		head += " " + theme.Correct.Render("Correct answer: "+o.Text)
	}
	text := lipgloss.NewStyle().Width(width - 4).Render(q.ExplanationText())
	return theme.Explanation.Render(head + "\n" + text)
}

func buttonLabel(a quiz.Attempt) string {
	switch {
	case a.Phase() == quiz.PhaseShowingExplanation && a.IsLast():
		return "Continue & Submit"
	case a.Phase() == quiz.PhaseShowingExplanation:
		return "Continue"
	case a.IsLast():
		return "Submit"
	}
	return "Next Question"
}

// contentWidth caps the readable column on wide terminals.
func contentWidth(width int) int {
	return max(40, min(width-8, 72))
}
