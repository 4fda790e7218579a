package pathway

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/quiz"
)

// fakeClock records scheduled calls so tests decide when they fire.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every timer that has not been stopped.
func (c *fakeClock) fire() int {
	c.mu.Lock()
	pending := c.timers
	c.timers = nil
	c.mu.Unlock()

	n := 0
	for _, t := range pending {
		if !t.stopped {
			t.fn()
			n++
		}
	}
	return n
}

type recorder struct {
	stages   []Stage
	concepts []string
	attempts []quiz.Result
	errs     []error
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnAttemptComplete: func(_ Stage, _ string, res quiz.Result) { r.attempts = append(r.attempts, res) },
		OnStageChange: func(st State) {
			r.stages = append(r.stages, st.Stage)
			r.concepts = append(r.concepts, st.Concept)
		},
		OnError: func(err error) { r.errs = append(r.errs, err) },
	}
}

func newJourney(t *testing.T, cur *curriculum.Curriculum, clock *fakeClock, rec *recorder) *Journey {
	t.Helper()
	j, err := New(cur,
		WithAfterFunc(clock.AfterFunc),
		WithCallbacks(rec.callbacks()),
		WithTransitionDelay(3*time.Second))
	require.NoError(t, err)
	require.NoError(t, j.Start())
	return j
}

// answer answers the current question and advances past it, dismissing
// the explanation if one is shown.
func answer(t *testing.T, j *Journey, correct bool) {
	t.Helper()
	a, ok := j.Attempt()
	require.True(t, ok, "no active attempt")
	q := a.Current()

	choice := q.CorrectOptionID
	if !correct {
		for _, o := range q.Options {
			if o.ID != q.CorrectOptionID {
				choice = o.ID
				break
			}
		}
	}
	require.NoError(t, j.SelectAnswer(q.ID, choice))
	require.NoError(t, j.Advance())

	if a, ok := j.Attempt(); ok && a.Phase() == quiz.PhaseShowingExplanation {
		require.False(t, correct, "explanation shown after a correct answer")
		require.NoError(t, j.Advance())
	}
}

func answerAll(t *testing.T, j *Journey, pattern ...bool) {
	t.Helper()
	for _, ok := range pattern {
		answer(t, j, ok)
	}
}

func TestJourney_ScenarioB_EndToEnd(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	j := newJourney(t, fractions(t), clock, rec)

	// Miss addition (Q3) and division (Q5).
	answerAll(t, j, true, true, false, true, false)

	st := j.State()
	require.Equal(t, StageTransition, st.Stage)
	assert.Equal(t, []string{addition, division}, st.Unresolved)
	_, ok := j.Attempt()
	assert.False(t, ok, "transition has no attempt")

	require.Equal(t, 1, clock.fire())
	st = j.State()
	require.Equal(t, StageConceptReview, st.Stage)
	assert.Equal(t, addition, st.Concept)

	// 2 of 3 is 67%, below the remediation mark.
	answerAll(t, j, true, false, true)
	st = j.State()
	require.Equal(t, StageConceptReview, st.Stage)
	assert.Equal(t, division, st.Concept)

	answerAll(t, j, true, true, true)
	st = j.State()
	assert.Equal(t, StageResults, st.Stage)
	assert.Equal(t, []string{addition}, st.Gaps)
	assert.True(t, st.Mastered.Has(division))
	assert.False(t, st.Mastered.Has(addition))

	assert.Equal(t,
		[]Stage{StageDiagnostic, StageTransition, StageConceptReview, StageConceptReview, StageResults},
		rec.stages)
	assert.Equal(t, []string{"", "", addition, division, ""}, rec.concepts)
	require.Len(t, rec.attempts, 3)
	assert.Equal(t, 60, rec.attempts[0].Score)
	assert.Equal(t, []string{"Q3", "Q5"}, rec.attempts[0].IncorrectQuestionIDs)
	assert.Equal(t, 67, rec.attempts[1].Score)
	assert.Equal(t, 100, rec.attempts[2].Score)
	assert.Empty(t, rec.errs)
}

func TestJourney_ScenarioA_FullMastery(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	j := newJourney(t, fractions(t), clock, rec)

	answerAll(t, j, true, true, true, true, true)
	require.Equal(t, 1, clock.fire())

	st := j.State()
	assert.Equal(t, StageResults, st.Stage)
	assert.Equal(t, 5, st.Mastered.Len())
	assert.Equal(t, []Stage{StageDiagnostic, StageTransition, StageResults}, rec.stages)
}

func TestJourney_TimerUsesConfiguredDelay(t *testing.T) {
	clock := &fakeClock{}
	j := newJourney(t, fractions(t), clock, &recorder{})

	answerAll(t, j, false, true, true, true, true)

	clock.mu.Lock()
	require.Len(t, clock.timers, 1)
	assert.Equal(t, 3*time.Second, clock.timers[0].d)
	clock.mu.Unlock()
}

func TestJourney_RestartCancelsPendingTransition(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	j := newJourney(t, fractions(t), clock, rec)

	answerAll(t, j, false, true, true, true, true)
	require.Equal(t, StageTransition, j.State().Stage)

	clock.mu.Lock()
	stale := clock.timers[0]
	clock.mu.Unlock()

	require.NoError(t, j.Restart())
	assert.True(t, stale.stopped, "restart must stop the pending timer")

	// A timer that fired concurrently with the restart is discarded.
	stale.fn()

	st := j.State()
	assert.Equal(t, StageDiagnostic, st.Stage)
	assert.Empty(t, st.History)
	a, ok := j.Attempt()
	require.True(t, ok)
	assert.Equal(t, 0, a.Cursor())
	_, selected := a.Selection("Q1")
	assert.False(t, selected, "restart must reset the attempt")
}

func TestJourney_StopDiscardsTransition(t *testing.T) {
	clock := &fakeClock{}
	j := newJourney(t, fractions(t), clock, &recorder{})

	answerAll(t, j, false, true, true, true, true)
	j.Stop()

	assert.Equal(t, 0, clock.fire())
	assert.Equal(t, StageTransition, j.State().Stage)
}

func TestJourney_ElapseSkipsTheWait(t *testing.T) {
	clock := &fakeClock{}
	j := newJourney(t, fractions(t), clock, &recorder{})

	assert.True(t, errors.Is(j.Elapse(), ErrUnexpectedEvent))

	answerAll(t, j, true, true, true, true, false)
	require.NoError(t, j.Elapse())

	st := j.State()
	assert.Equal(t, StageConceptReview, st.Stage)
	assert.Equal(t, division, st.Concept)
	assert.Equal(t, 0, clock.fire(), "elapse must cancel the timer")
}

func TestJourney_MissingRemedialSetHalts(t *testing.T) {
	cur, err := curriculum.Parse([]byte(`
id: gappy
concepts: [{id: a}]
diagnostic:
  questions:
    - {id: D1, prompt: "?", options: [{id: x, text: "1"}, {id: y, text: "2"}], correct: x}
concept_map: {D1: a}
`))
	require.NoError(t, err)

	clock := &fakeClock{}
	rec := &recorder{}
	j := newJourney(t, cur, clock, rec)

	answer(t, j, false)
	clock.fire()

	assert.True(t, j.Halted())
	assert.True(t, errors.Is(j.Err(), ErrNoRemedialSet))
	require.Len(t, rec.errs, 1)
	assert.Equal(t, StageTransition, j.State().Stage, "journey halts at the current stage")

	err = j.SelectAnswer("D1", "x")
	assert.True(t, errors.Is(err, ErrHalted) || errors.Is(err, ErrNoActiveAttempt), "got %v", err)
	assert.True(t, errors.Is(j.Elapse(), ErrHalted))
}

func TestJourney_UsageErrorsLeaveStateAlone(t *testing.T) {
	clock := &fakeClock{}
	j := newJourney(t, fractions(t), clock, &recorder{})

	assert.True(t, errors.Is(j.Advance(), quiz.ErrNoSelection))
	assert.True(t, errors.Is(j.SelectAnswer("Q99", "A"), quiz.ErrUnknownQuestion))

	a, ok := j.Attempt()
	require.True(t, ok)
	assert.Equal(t, 0, a.Cursor())
	assert.False(t, j.Halted())
}

func TestJourney_NotStarted(t *testing.T) {
	j, err := New(fractions(t))
	require.NoError(t, err)

	assert.True(t, errors.Is(j.Advance(), ErrNotStarted))
	assert.NotEqual(t, j.ID().String(), "")
}

func TestJourney_IndependentJourneys(t *testing.T) {
	cur := fractions(t)
	c1, c2 := &fakeClock{}, &fakeClock{}
	j1 := newJourney(t, cur, c1, &recorder{})
	j2 := newJourney(t, cur, c2, &recorder{})

	answerAll(t, j1, true, true, true, true, true)

	assert.NotEqual(t, j1.ID(), j2.ID())
	assert.Equal(t, StageTransition, j1.State().Stage)
	assert.Equal(t, StageDiagnostic, j2.State().Stage)
}

func TestJourney_ExplanationsDisabled(t *testing.T) {
	clock := &fakeClock{}
	j, err := New(fractions(t), WithAfterFunc(clock.AfterFunc), WithExplanations(false))
	require.NoError(t, err)
	require.NoError(t, j.Start())

	require.NoError(t, j.SelectAnswer("Q1", "A"))
	require.NoError(t, j.Advance())

	a, _ := j.Attempt()
	assert.Equal(t, quiz.PhaseAnswering, a.Phase())
	assert.Equal(t, 1, a.Cursor())
}

func TestNew_RejectsNilCurriculum(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
