package pathway

import (
	"maps"
	"slices"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/mastery"
	"github.com/abhisek/pathwise/internal/quiz"
)

// Stage is a step of the learning journey:
// Diagnostic -> Transition -> ConceptReview(concept)* -> Results.
type Stage int

const (
	StageDiagnostic    Stage = iota // The full diagnostic quiz
	StageTransition                 // Non-interactive pause while the path is built
	StageConceptReview              // A remedial quiz bound to one concept
	StageResults                    // Terminal summary
)

var stageNames = map[Stage]string{
	StageDiagnostic:    "diagnostic",
	StageTransition:    "transition",
	StageConceptReview: "concept-review",
	StageResults:       "results",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Interactive reports whether the stage runs a quiz attempt.
func (s Stage) Interactive() bool {
	return s == StageDiagnostic || s == StageConceptReview
}

// AttemptRecord is one completed attempt in the journey history.
type AttemptRecord struct {
	Stage                Stage
	Concept              string
	Score                int
	IncorrectQuestionIDs []string
	Passed               bool
}

// State is the cumulative record of one journey. Reduce never modifies a
// State it is given; it returns a new one.
type State struct {
	Stage Stage

	// Concept and Remedial are bound only in StageConceptReview.
	Concept  string
	Remedial curriculum.QuizSet

	// Mastered is the running union of mastered concepts.
	Mastered mastery.ConceptSet

	// Unresolved is the queue of concepts still awaiting their single
	// remediation pass, in priority order. While a concept is under review
	// it stays at the head of the queue.
	Unresolved []string

	// Gaps are reviewed concepts that stayed below the remediation mark.
	Gaps []string

	Ledger     mastery.Ledger
	History    []AttemptRecord
	Diagnostic *quiz.Result
}

// Initial returns the state at the start of a journey.
func Initial() State {
	return State{
		Stage:    StageDiagnostic,
		Mastered: mastery.NewConceptSet(),
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	cp := s
	cp.Mastered = s.Mastered.Clone()
	cp.Unresolved = slices.Clone(s.Unresolved)
	cp.Gaps = slices.Clone(s.Gaps)
	cp.History = make([]AttemptRecord, len(s.History))
	for i, h := range s.History {
		h.IncorrectQuestionIDs = slices.Clone(h.IncorrectQuestionIDs)
		cp.History[i] = h
	}
	cp.Ledger = maps.Clone(s.Ledger)
	if s.Diagnostic != nil {
		d := s.Diagnostic.Clone()
		cp.Diagnostic = &d
	}
	cp.Remedial.Questions = slices.Clone(s.Remedial.Questions)
	return cp
}

// Attempts returns how many attempts have completed.
func (s State) Attempts() int {
	return len(s.History)
}

// Reviews returns how many concept reviews have completed.
func (s State) Reviews() int {
	n := 0
	for _, h := range s.History {
		if h.Stage == StageConceptReview {
			n++
		}
	}
	return n
}

// Done reports whether the journey has reached its terminal stage.
func (s State) Done() bool {
	return s.Stage == StageResults
}
