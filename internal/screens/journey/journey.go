package journey

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

const noticeSelectFirst = "Select an answer first"

// Options configures the journey a screen runs.
type Options struct {
	Explanations    bool
	TransitionDelay time.Duration
	Logger          *zap.Logger

	// AfterFunc overrides the transition scheduler; tests use it to hold
	// the transition open.
	AfterFunc pathway.AfterFunc
}

// JourneyScreen runs one learner journey: diagnostic, transition,
// concept reviews and results.
type JourneyScreen struct {
	cur     *curriculum.Curriculum
	journey *pathway.Journey
	events  chan tea.Msg
	done    chan struct{}
	closing sync.Once
	keys    keyMap

	choice      components.MultiChoice
	choiceFor   string
	spinner     spinner.Model
	confirmQuit bool
	notice      string
	lastResult  *attemptDoneMsg
	err         error
}

var (
	_ screen.Screen          = (*JourneyScreen)(nil)
	_ screen.KeyHintProvider = (*JourneyScreen)(nil)
	_ screen.Closer          = (*JourneyScreen)(nil)
	_ screen.BackHandler     = (*JourneyScreen)(nil)
)

// New creates a journey screen over cur. The journey starts in Init.
func New(cur *curriculum.Curriculum, opts Options) *JourneyScreen {
	s := &JourneyScreen{
		cur:    cur,
		events: make(chan tea.Msg, eventBuffer),
		done:   make(chan struct{}),
		keys:   defaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}

	jopts := []pathway.Option{
		pathway.WithCallbacks(callbacks(s.events)),
		pathway.WithExplanations(opts.Explanations),
	}
	if opts.Logger != nil {
		jopts = append(jopts, pathway.WithLogger(opts.Logger))
	}
	if opts.TransitionDelay > 0 {
		jopts = append(jopts, pathway.WithTransitionDelay(opts.TransitionDelay))
	}
	if opts.AfterFunc != nil {
		jopts = append(jopts, pathway.WithAfterFunc(opts.AfterFunc))
	}

	j, err := pathway.New(cur, jopts...)
	if err != nil {
		s.err = err
		return s
	}
	s.journey = j
	return s
}

func (s *JourneyScreen) Init() tea.Cmd {
	if s.journey == nil {
		return nil
	}
	if err := s.journey.Start(); err != nil {
		s.err = err
	}
	s.syncChoice()
	return s.waitForEvent()
}

func (s *JourneyScreen) Title() string {
	if s.journey == nil {
		return "Journey"
	}
	switch st := s.journey.State(); st.Stage {
	case pathway.StageDiagnostic:
		return "Diagnostic"
	case pathway.StageTransition:
		return "Learning Path"
	case pathway.StageConceptReview:
		return "Concept Review: " + s.cur.Label(st.Concept)
	case pathway.StageResults:
		return "Results"
	}
	return "Journey"
}

// Close stops the transition timer and releases the pending event reader
// when the screen leaves the stack.
func (s *JourneyScreen) Close() {
	s.closing.Do(func() { close(s.done) })
	if s.journey != nil {
		s.journey.Stop()
	}
}

func (s *JourneyScreen) waitForEvent() tea.Cmd {
	return waitForEvent(s.events, s.done)
}

// HandlesBack reports whether Esc should ask before leaving. Only an
// attempt in progress is worth confirming.
func (s *JourneyScreen) HandlesBack() bool {
	return s.journey != nil && s.err == nil && s.journey.State().Stage.Interactive()
}

func (s *JourneyScreen) KeyHints() []layout.KeyHint {
	if s.err != nil || s.journey == nil {
		return hints(s.keys.Leave)
	}
	if s.confirmQuit {
		return hints(s.keys.Confirm, s.keys.Cancel)
	}
	switch s.journey.State().Stage {
	case pathway.StageDiagnostic, pathway.StageConceptReview:
		next := s.keys.Next
		if a, ok := s.journey.Attempt(); ok {
			switch {
			case a.Phase() == quiz.PhaseShowingExplanation:
				next.SetHelp("Enter", "Continue")
			case a.IsLast():
				next.SetHelp("Enter", "Submit")
			}
		}
		return hints(s.keys.Up, s.keys.Select, s.keys.Number, next, s.keys.Leave)
	case pathway.StageTransition:
		return hints(s.keys.Skip)
	case pathway.StageResults:
		return hints(s.keys.Restart, s.keys.Home)
	}
	return nil
}

func (s *JourneyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stageChangedMsg:
		s.syncChoice()
		s.confirmQuit = false
		if msg.State.Stage == pathway.StageTransition {
			return s, tea.Batch(s.waitForEvent(), s.spinner.Tick)
		}
		return s, s.waitForEvent()

	case attemptDoneMsg:
		res := msg
		s.lastResult = &res
		return s, s.waitForEvent()

	case journeyErrMsg:
		s.err = msg.Err
		return s, s.waitForEvent()

	case spinner.TickMsg:
		if s.journey == nil || s.journey.State().Stage != pathway.StageTransition {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *JourneyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.err != nil || s.journey == nil {
		if key.Matches(msg, s.keys.Leave) {
			return s, popScreen
		}
		return s, nil
	}

	if s.confirmQuit {
		switch {
		case key.Matches(msg, s.keys.Confirm):
			return s, popScreen
		case key.Matches(msg, s.keys.Cancel):
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.journey.State().Stage {
	case pathway.StageDiagnostic, pathway.StageConceptReview:
		return s.handleQuizKey(msg)
	case pathway.StageTransition:
		if key.Matches(msg, s.keys.Skip) {
			s.report(s.journey.Elapse())
		}
	case pathway.StageResults:
		switch {
		case key.Matches(msg, s.keys.Restart):
			s.lastResult = nil
			s.report(s.journey.Restart())
			s.syncChoice()
		case key.Matches(msg, s.keys.Home):
			return s, popScreen
		}
	}
	return s, nil
}

func (s *JourneyScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	a, ok := s.journey.Attempt()
	if !ok {
		return s, nil
	}
	q := a.Current()

	switch {
	case key.Matches(msg, s.keys.Leave):
		s.confirmQuit = true
	case key.Matches(msg, s.keys.Up, s.keys.Down):
		s.choice, _ = s.choice.Update(msg)
	case key.Matches(msg, s.keys.Select):
		if opt, ok := s.choice.Highlighted(); ok {
			s.selectOption(q.ID, opt.ID)
		}
	case key.Matches(msg, s.keys.Number):
		n, _ := strconv.Atoi(msg.String())
		if opt, ok := s.choice.OptionAt(n); ok {
			s.choice.Cursor = n - 1
			s.selectOption(q.ID, opt.ID)
		}
	case key.Matches(msg, s.keys.Next):
		err := s.journey.Advance()
		if errors.Is(err, quiz.ErrNoSelection) {
			s.notice = noticeSelectFirst
			return s, nil
		}
		s.report(err)
		s.syncChoice()
	}
	return s, nil
}

func (s *JourneyScreen) selectOption(questionID, optionID string) {
	if err := s.journey.SelectAnswer(questionID, optionID); err != nil {
		s.report(err)
		return
	}
	s.choice.Selected = optionID
	s.notice = ""
}

// syncChoice repositions the option list when the current question changes.
func (s *JourneyScreen) syncChoice() {
	a, ok := s.journey.Attempt()
	if !ok {
		s.choiceFor = ""
		return
	}
	q := a.Current()
	sel, _ := a.Selection(q.ID)
	if q.ID != s.choiceFor {
		s.choice = components.NewMultiChoice(q.Options, sel)
		s.choiceFor = q.ID
		s.notice = ""
		return
	}
	s.choice.Selected = sel
}

// report surfaces a non-fatal journey error as a notice. Halting errors
// arrive through the OnError callback.
func (s *JourneyScreen) report(err error) {
	if err == nil || errors.Is(err, pathway.ErrUnexpectedEvent) {
		return
	}
	if s.journey.Halted() {
		s.err = s.journey.Err()
		return
	}
	s.notice = err.Error()
}

func (s *JourneyScreen) View(width, height int) string {
	if s.err != nil {
		return renderError(width, height, s.err)
	}
	if s.journey == nil {
		return ""
	}
	st := s.journey.State()
	var body string
	switch st.Stage {
	case pathway.StageDiagnostic, pathway.StageConceptReview:
		body = s.renderQuiz(st, width)
	case pathway.StageTransition:
		body = s.renderTransition(st, width)
	case pathway.StageResults:
		body = s.renderResults(st, width)
	}
	if s.confirmQuit {
		body = renderQuitConfirm(width)
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(body)
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}
