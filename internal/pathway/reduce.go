package pathway

import (
	"errors"
	"fmt"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/mastery"
	"github.com/abhisek/pathwise/internal/quiz"
)

var (
	// ErrNoRemedialSet is returned when a concept needs review but the
	// curriculum defines no remedial questions for it.
	ErrNoRemedialSet = errors.New("no remedial set for concept")

	// ErrUnexpectedEvent is returned for an event the current stage does
	// not accept.
	ErrUnexpectedEvent = errors.New("unexpected event for stage")
)

// Event drives the journey from one State to the next.
type Event interface {
	event()
}

// DiagnosticSubmitted carries the result of the diagnostic attempt.
type DiagnosticSubmitted struct{ Result quiz.Result }

// TransitionElapsed fires when the transition pause is over.
type TransitionElapsed struct{}

// ReviewSubmitted carries the result of the current concept review.
type ReviewSubmitted struct{ Result quiz.Result }

// Restarted discards the journey and starts over.
type Restarted struct{}

func (DiagnosticSubmitted) event() {}
func (TransitionElapsed) event()   {}
func (ReviewSubmitted) event()     {}
func (Restarted) event()           {}

// Reduce folds one event into the journey state. It is pure: st is never
// modified, and on error st is returned unchanged.
func Reduce(cur *curriculum.Curriculum, st State, ev Event) (State, error) {
	switch ev := ev.(type) {
	case Restarted:
		return Initial(), nil

	case DiagnosticSubmitted:
		if st.Stage != StageDiagnostic {
			return st, unexpected(st, ev)
		}
		return diagnosticSubmitted(cur, ev.Result)

	case TransitionElapsed:
		if st.Stage != StageTransition {
			return st, unexpected(st, ev)
		}
		next, err := bindHead(cur, st.Clone())
		if err != nil {
			return st, err
		}
		return next, nil

	case ReviewSubmitted:
		if st.Stage != StageConceptReview {
			return st, unexpected(st, ev)
		}
		next, err := reviewSubmitted(cur, st.Clone(), ev.Result)
		if err != nil {
			return st, err
		}
		return next, nil

	default:
		return st, unexpected(st, ev)
	}
}

func diagnosticSubmitted(cur *curriculum.Curriculum, res quiz.Result) (State, error) {
	next := Initial()
	res = res.Clone()
	next.Diagnostic = &res

	ledger := mastery.Ledger{}
	var err error
	for _, id := range res.Mastered.Sorted() {
		if ledger, _, err = ledger.Apply(id, mastery.StateMastered, mastery.TriggerDiagnostic); err != nil {
			return State{}, err
		}
	}
	for _, id := range res.NeedsReinforcement.Sorted() {
		if ledger, _, err = ledger.Apply(id, mastery.StateNeedsReinforcement, mastery.TriggerDiagnostic); err != nil {
			return State{}, err
		}
	}
	next.Ledger = ledger

	next.Mastered = res.Mastered.Clone()
	next.Unresolved = cur.Order(res.NeedsReinforcement)
	next.History = append(next.History, AttemptRecord{
		Stage:                StageDiagnostic,
		Score:                res.Score,
		IncorrectQuestionIDs: res.IncorrectQuestionIDs,
		Passed:               res.Passed(cur.Thresholds.DiagnosticPass),
	})
	next.Stage = StageTransition
	return next, nil
}

func reviewSubmitted(cur *curriculum.Curriculum, next State, res quiz.Result) (State, error) {
	concept := next.Concept
	passed := res.Score >= cur.Thresholds.Remediation

	to, trigger := mastery.StateGap, mastery.TriggerRemediationFailed
	if passed {
		to, trigger = mastery.StateMastered, mastery.TriggerRemediationPassed
		next.Mastered.Add(concept)
	} else {
		next.Gaps = append(next.Gaps, concept)
	}

	var err error
	if next.Ledger, _, err = next.Ledger.Apply(concept, to, trigger); err != nil {
		return State{}, err
	}

	next.History = append(next.History, AttemptRecord{
		Stage:                StageConceptReview,
		Concept:              concept,
		Score:                res.Score,
		IncorrectQuestionIDs: res.IncorrectQuestionIDs,
		Passed:               passed,
	})

	// Single pass: the reviewed concept leaves the queue whatever the score.
	if len(next.Unresolved) > 0 {
		next.Unresolved = next.Unresolved[1:]
	}
	next.Concept = ""
	next.Remedial = curriculum.QuizSet{}
	return bindHead(cur, next)
}

// bindHead moves to a review of the head of the queue, or to Results when
// the queue is empty.
func bindHead(cur *curriculum.Curriculum, next State) (State, error) {
	if len(next.Unresolved) == 0 {
		next.Stage = StageResults
		return next, nil
	}

	head := next.Unresolved[0]
	set, ok := cur.RemedialFor(head)
	if !ok {
		return State{}, fmt.Errorf("%w: %q", ErrNoRemedialSet, head)
	}
	next.Stage = StageConceptReview
	next.Concept = head
	next.Remedial = set
	return next, nil
}

func unexpected(st State, ev Event) error {
	return fmt.Errorf("%w: %T in %s", ErrUnexpectedEvent, ev, st.Stage)
}
