package pathway

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/quiz"
)

// DefaultTransitionDelay is how long the transition stage waits before
// binding the first concept review.
const DefaultTransitionDelay = 3 * time.Second

var (
	// ErrNoActiveAttempt is returned for quiz actions outside an
	// interactive stage.
	ErrNoActiveAttempt = errors.New("no quiz attempt in progress")

	// ErrHalted is returned once a configuration error has stopped the journey.
	ErrHalted = errors.New("journey halted")

	// ErrNotStarted is returned by actions before Start.
	ErrNotStarted = errors.New("journey not started")
)

// Timer is a pending scheduled call. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, fn func()) Timer

func realAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Callbacks receive journey notifications. They are invoked without any
// journey lock held, so they may call back into the Journey.
type Callbacks struct {
	// OnAttemptComplete fires once per submitted attempt.
	OnAttemptComplete func(stage Stage, concept string, res quiz.Result)

	// OnStageChange fires on every stage entry with the new state.
	OnStageChange func(st State)

	// OnError fires when a configuration error halts the journey.
	OnError func(err error)
}

// Option configures a Journey.
type Option func(*Journey)

// WithCallbacks sets the notification callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(j *Journey) { j.cb = cb }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(j *Journey) { j.log = log }
}

// WithTransitionDelay sets the transition auto-advance delay.
func WithTransitionDelay(d time.Duration) Option {
	return func(j *Journey) { j.delay = d }
}

// WithExplanations enables or disables the explanation pause in every
// attempt of the journey.
func WithExplanations(enabled bool) Option {
	return func(j *Journey) { j.explanations = enabled }
}

// WithAfterFunc replaces the scheduler used for the transition timer.
func WithAfterFunc(f AfterFunc) Option {
	return func(j *Journey) { j.afterFunc = f }
}

// Journey drives one learner through the pathway. It owns the active quiz
// attempt and the transition timer; the stage logic itself lives in Reduce.
// A Journey is safe for use from the timer goroutine and one caller
// goroutine, but journeys must not be shared between learners.
type Journey struct {
	id           uuid.UUID
	cur          *curriculum.Curriculum
	cb           Callbacks
	log          *zap.Logger
	delay        time.Duration
	explanations bool
	afterFunc    AfterFunc

	mu         sync.Mutex
	started    bool
	state      State
	attempt    quiz.Attempt
	hasAttempt bool
	timer      Timer
	gen        uint64
	err        error
}

// New creates a journey over a validated curriculum. Call Start to begin.
func New(cur *curriculum.Curriculum, opts ...Option) (*Journey, error) {
	if cur == nil || cur.Graph() == nil {
		return nil, fmt.Errorf("pathway: curriculum is nil or not validated")
	}
	j := &Journey{
		id:           uuid.New(),
		cur:          cur,
		log:          zap.NewNop(),
		delay:        DefaultTransitionDelay,
		explanations: true,
		afterFunc:    realAfterFunc,
		state:        Initial(),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.log = j.log.With(zap.String("journey_id", j.id.String()), zap.String("curriculum", cur.ID))
	return j, nil
}

// ID returns the journey identifier.
func (j *Journey) ID() uuid.UUID { return j.id }

// Curriculum returns the curriculum the journey runs over.
func (j *Journey) Curriculum() *curriculum.Curriculum { return j.cur }

// Start begins the journey at the diagnostic. Calling Start again is the
// same as Restart.
func (j *Journey) Start() error {
	return j.reset("start")
}

// Restart discards all journey state, cancels any pending transition and
// begins again at the diagnostic.
func (j *Journey) Restart() error {
	return j.reset("restart")
}

func (j *Journey) reset(reason string) error {
	var notes []func()

	j.mu.Lock()
	j.cancelTimerLocked()
	j.err = nil
	j.started = true
	j.log.Info("journey reset", zap.String("reason", reason))
	err := j.applyLocked(Restarted{}, &notes)
	j.mu.Unlock()

	dispatch(notes)
	return err
}

// Stop cancels any pending transition. The journey can be restarted.
func (j *Journey) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cancelTimerLocked()
	j.log.Debug("journey stopped", zap.Stringer("stage", j.state.Stage))
}

// SelectAnswer records a selection in the active attempt.
func (j *Journey) SelectAnswer(questionID, optionID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.checkActiveLocked(); err != nil {
		return err
	}
	next, err := j.attempt.SelectAnswer(questionID, optionID)
	if err != nil {
		return err
	}
	j.attempt = next
	return nil
}

// Advance advances the active attempt. When the attempt submits, its
// result is folded into the journey state.
func (j *Journey) Advance() error {
	var notes []func()

	j.mu.Lock()
	err := j.advanceLocked(&notes)
	j.mu.Unlock()

	dispatch(notes)
	return err
}

func (j *Journey) advanceLocked(notes *[]func()) error {
	if err := j.checkActiveLocked(); err != nil {
		return err
	}
	next, err := j.attempt.Advance()
	if err != nil {
		return err
	}
	j.attempt = next
	if next.Phase() != quiz.PhaseSubmitted {
		return nil
	}

	res, err := next.Result()
	if err != nil {
		return err
	}

	stage, concept := j.state.Stage, j.state.Concept
	j.log.Info("attempt complete",
		zap.Stringer("stage", stage),
		zap.String("concept", concept),
		zap.Int("score", res.Score),
		zap.Strings("incorrect", res.IncorrectQuestionIDs))
	if cb := j.cb.OnAttemptComplete; cb != nil {
		done := res.Clone()
		*notes = append(*notes, func() { cb(stage, concept, done) })
	}

	var ev Event = DiagnosticSubmitted{Result: res}
	if stage == StageConceptReview {
		ev = ReviewSubmitted{Result: res}
	}
	return j.applyLocked(ev, notes)
}

// Elapse ends the transition stage immediately, cancelling the timer.
func (j *Journey) Elapse() error {
	var notes []func()

	j.mu.Lock()
	var err error
	switch {
	case j.err != nil:
		err = fmt.Errorf("%w: %w", ErrHalted, j.err)
	case j.state.Stage != StageTransition:
		err = fmt.Errorf("%w: elapse in %s", ErrUnexpectedEvent, j.state.Stage)
	default:
		j.cancelTimerLocked()
		err = j.applyLocked(TransitionElapsed{}, &notes)
	}
	j.mu.Unlock()

	dispatch(notes)
	return err
}

// State returns a copy of the current journey state.
func (j *Journey) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state.Clone()
}

// Attempt returns the active attempt, if the current stage runs one.
func (j *Journey) Attempt() (quiz.Attempt, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.attempt, j.hasAttempt
}

// Halted reports whether a configuration error stopped the journey.
func (j *Journey) Halted() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err != nil
}

// Err returns the configuration error that halted the journey, if any.
func (j *Journey) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Summary summarizes the journey so far.
func (j *Journey) Summary() Summary {
	return Summarize(j.cur, j.State())
}

func (j *Journey) checkActiveLocked() error {
	if !j.started {
		return ErrNotStarted
	}
	if j.err != nil {
		return fmt.Errorf("%w: %w", ErrHalted, j.err)
	}
	if !j.hasAttempt {
		return fmt.Errorf("%w (stage %s)", ErrNoActiveAttempt, j.state.Stage)
	}
	return nil
}

// applyLocked reduces ev into the state and enters the resulting stage.
// A reducer or attempt error halts the journey at its current stage.
func (j *Journey) applyLocked(ev Event, notes *[]func()) error {
	next, err := Reduce(j.cur, j.state, ev)
	if err != nil {
		if errors.Is(err, ErrUnexpectedEvent) {
			return err
		}
		j.haltLocked(err, notes)
		return err
	}
	j.state = next
	j.hasAttempt = false
	j.attempt = quiz.Attempt{}

	switch next.Stage {
	case StageDiagnostic:
		if err := j.beginAttemptLocked(j.cur.Diagnostic.Questions); err != nil {
			j.haltLocked(fmt.Errorf("diagnostic: %w", err), notes)
			return err
		}
	case StageConceptReview:
		if err := j.beginAttemptLocked(next.Remedial.Questions); err != nil {
			j.haltLocked(fmt.Errorf("remedial %s: %w", next.Concept, err), notes)
			return err
		}
	case StageTransition:
		j.scheduleLocked()
	}

	j.log.Info("stage changed",
		zap.Stringer("stage", next.Stage),
		zap.String("concept", next.Concept),
		zap.Strings("unresolved", next.Unresolved))
	if cb := j.cb.OnStageChange; cb != nil {
		snapshot := next.Clone()
		*notes = append(*notes, func() { cb(snapshot) })
	}
	return nil
}

func (j *Journey) beginAttemptLocked(questions []quiz.Question) error {
	a, err := quiz.NewAttempt(questions,
		quiz.WithExplanations(j.explanations),
		quiz.WithConceptMap(j.cur.ConceptMap))
	if err != nil {
		return err
	}
	j.attempt = a
	j.hasAttempt = true
	return nil
}

func (j *Journey) haltLocked(err error, notes *[]func()) {
	j.err = err
	j.cancelTimerLocked()
	j.log.Error("journey halted", zap.Stringer("stage", j.state.Stage), zap.Error(err))
	if cb := j.cb.OnError; cb != nil {
		*notes = append(*notes, func() { cb(err) })
	}
}

func (j *Journey) scheduleLocked() {
	gen := j.gen
	j.timer = j.afterFunc(j.delay, func() { j.fire(gen) })
	j.log.Debug("transition scheduled", zap.Duration("delay", j.delay))
}

// fire runs on the timer goroutine. A fire from a cancelled generation is
// discarded so it cannot act on a restarted journey.
func (j *Journey) fire(gen uint64) {
	var notes []func()

	j.mu.Lock()
	if gen != j.gen || j.state.Stage != StageTransition || j.err != nil {
		j.mu.Unlock()
		j.log.Debug("stale transition discarded", zap.Uint64("gen", gen))
		return
	}
	j.timer = nil
	j.gen++
	_ = j.applyLocked(TransitionElapsed{}, &notes)
	j.mu.Unlock()

	dispatch(notes)
}

func (j *Journey) cancelTimerLocked() {
	j.gen++
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
}

func dispatch(notes []func()) {
	for _, fn := range notes {
		fn()
	}
}
