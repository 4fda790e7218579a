package journey

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/quiz"
)

// eventBuffer bounds the callback queue between the journey and the
// Bubble Tea loop. Views read journey state directly, so a dropped
// notification only delays a redraw.
const eventBuffer = 32

// stageChangedMsg is sent on every stage entry.
type stageChangedMsg struct {
	State pathway.State
}

// attemptDoneMsg is sent when a diagnostic or review attempt is submitted.
type attemptDoneMsg struct {
	Stage   pathway.Stage
	Concept string
	Result  quiz.Result
}

// journeyErrMsg is sent when a configuration error halts the journey.
type journeyErrMsg struct {
	Err error
}

// waitForEvent blocks on the next journey notification. It returns nil
// once done is closed so a popped screen leaves no reader behind.
func waitForEvent(ch <-chan tea.Msg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-done:
			return nil
		}
	}
}

// post queues msg without blocking. Callbacks fire on the Update goroutine
// for learner actions, so a blocking send could deadlock a full buffer.
func post(ch chan<- tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
	}
}

// callbacks adapts journey notifications into Bubble Tea messages.
func callbacks(ch chan<- tea.Msg) pathway.Callbacks {
	return pathway.Callbacks{
		OnStageChange: func(st pathway.State) {
			post(ch, stageChangedMsg{State: st})
		},
		OnAttemptComplete: func(stage pathway.Stage, concept string, res quiz.Result) {
			post(ch, attemptDoneMsg{Stage: stage, Concept: concept, Result: res})
		},
		OnError: func(err error) {
			post(ch, journeyErrMsg{Err: err})
		},
	}
}
