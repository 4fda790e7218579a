package quiz

import (
	"maps"
	"slices"

	"github.com/abhisek/pathwise/internal/mastery"
)

// Phase is the attempt's position in its lifecycle:
// Answering(cursor) -> ShowingExplanation(cursor) -> Answering(cursor+1) -> ... -> Submitted.
type Phase int

const (
	PhaseAnswering          Phase = iota // Waiting for a selection on the current question
	PhaseShowingExplanation              // Forced pause after an incorrect answer
	PhaseSubmitted                       // Terminal; the attempt is immutable
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseShowingExplanation:
		return "showing-explanation"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Attempt is one run over a fixed, ordered question sequence.
//
// Attempt is a value: every learner action returns a new Attempt and leaves
// the receiver untouched, so a caller can always hold on to the previous state.
type Attempt struct {
	questions    []Question
	index        map[string]int
	conceptMap   mastery.ConceptMap
	explanations bool

	cursor             int
	selections         map[string]string
	showingExplanation bool
	submitted          bool
	result             *Result
}

// AttemptOption configures a new Attempt.
type AttemptOption func(*Attempt)

// WithExplanations enables or disables the forced explanation pause after an
// incorrect answer. Enabled by default.
func WithExplanations(enabled bool) AttemptOption {
	return func(a *Attempt) { a.explanations = enabled }
}

// WithConceptMap sets the question-to-concept mapping used to classify the
// attempt at submission.
func WithConceptMap(cmap mastery.ConceptMap) AttemptOption {
	return func(a *Attempt) { a.conceptMap = maps.Clone(cmap) }
}

// NewAttempt validates the question set and returns an attempt positioned on
// the first question. An empty or malformed set is rejected before starting.
func NewAttempt(questions []Question, opts ...AttemptOption) (Attempt, error) {
	if err := ValidateSet(questions); err != nil {
		return Attempt{}, err
	}

	a := Attempt{
		questions:    slices.Clone(questions),
		index:        make(map[string]int, len(questions)),
		explanations: true,
		selections:   make(map[string]string),
	}
	for i, q := range a.questions {
		a.index[q.ID] = i
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a, nil
}

// SelectAnswer records the learner's choice for a question, replacing any
// earlier choice. Only the question's membership in the sequence is checked.
func (a Attempt) SelectAnswer(questionID, optionID string) (Attempt, error) {
	if a.submitted {
		return a, ErrAttemptSubmitted
	}
	if _, ok := a.index[questionID]; !ok {
		return a, ErrUnknownQuestion
	}

	a.selections = maps.Clone(a.selections)
	a.selections[questionID] = optionID
	return a, nil
}

// Advance moves the attempt forward according to its current phase:
//   - showing an explanation: dismiss it and move on (or submit on the last question);
//   - incorrect answer with explanations enabled: show the explanation, cursor stays;
//   - otherwise: move on (or submit on the last question).
//
// An unanswered question cannot be skipped: Advance returns the unchanged
// attempt and ErrNoSelection.
func (a Attempt) Advance() (Attempt, error) {
	if len(a.questions) == 0 {
		return a, ErrNotStarted
	}
	if a.submitted {
		return a, ErrAttemptSubmitted
	}

	if a.showingExplanation {
		a.showingExplanation = false
		return a.forward()
	}

	q := a.questions[a.cursor]
	sel, ok := a.selections[q.ID]
	if !ok {
		return a, ErrNoSelection
	}

	if !q.IsCorrect(sel) && a.explanations {
		a.showingExplanation = true
		return a, nil
	}
	return a.forward()
}

func (a Attempt) forward() (Attempt, error) {
	if a.cursor < len(a.questions)-1 {
		a.cursor++
		return a, nil
	}
	next, _, err := a.Submit()
	return next, err
}

// Submit finalizes the attempt: scores it, classifies the concepts it
// touched, and freezes it. Unanswered questions count as incorrect.
func (a Attempt) Submit() (Attempt, Result, error) {
	if len(a.questions) == 0 {
		return a, Result{}, ErrNotStarted
	}
	if a.submitted {
		return a, Result{}, ErrAttemptSubmitted
	}

	outcomes := make([]mastery.Outcome, len(a.questions))
	var correct int
	var incorrect []string
	for i, q := range a.questions {
		ok := q.IsCorrect(a.selections[q.ID])
		outcomes[i] = mastery.Outcome{QuestionID: q.ID, Correct: ok}
		if ok {
			correct++
		} else {
			incorrect = append(incorrect, q.ID)
		}
	}

	cls := mastery.Classify(outcomes, a.conceptMap)
	res := Result{
		Score:                Score(correct, len(a.questions)),
		Correct:              correct,
		Total:                len(a.questions),
		IncorrectQuestionIDs: incorrect,
		Outcomes:             outcomes,
		Mastered:             cls.Mastered,
		NeedsReinforcement:   cls.NeedsReinforcement,
	}

	a.submitted = true
	a.showingExplanation = false
	a.result = &res
	return a, res.Clone(), nil
}

// Result returns the attempt's result once submitted.
func (a Attempt) Result() (Result, error) {
	if a.result == nil {
		return Result{}, ErrNotSubmitted
	}
	return a.result.Clone(), nil
}

// Phase returns the attempt's lifecycle phase.
func (a Attempt) Phase() Phase {
	switch {
	case a.submitted:
		return PhaseSubmitted
	case a.showingExplanation:
		return PhaseShowingExplanation
	default:
		return PhaseAnswering
	}
}

// Cursor is the 0-based index of the current question.
func (a Attempt) Cursor() int { return a.cursor }

// Len is the number of questions in the attempt.
func (a Attempt) Len() int { return len(a.questions) }

// Current returns the question under the cursor, or the zero Question for an
// attempt that holds none.
func (a Attempt) Current() Question {
	if len(a.questions) == 0 {
		return Question{}
	}
	return a.questions[a.cursor]
}

// IsLast reports whether the cursor is on the final question.
func (a Attempt) IsLast() bool { return a.cursor == len(a.questions)-1 }

// ExplanationsEnabled reports whether incorrect answers pause on an explanation.
func (a Attempt) ExplanationsEnabled() bool { return a.explanations }

// Selection returns the recorded option for a question.
func (a Attempt) Selection(questionID string) (string, bool) {
	sel, ok := a.selections[questionID]
	return sel, ok
}

// CanAdvance reports whether Advance would change the attempt.
func (a Attempt) CanAdvance() bool {
	if a.submitted || len(a.questions) == 0 {
		return false
	}
	if a.showingExplanation {
		return true
	}
	_, ok := a.selections[a.Current().ID]
	return ok
}

// Progress returns the fraction of questions already passed (0.0-1.0).
func (a Attempt) Progress() float64 {
	if a.submitted {
		return 1.0
	}
	if len(a.questions) == 0 {
		return 0
	}
	return float64(a.cursor) / float64(len(a.questions))
}
