package mastery

import (
	"errors"
	"fmt"
	"maps"
)

// ConceptState represents a concept's position in a single learning journey.
type ConceptState string

const (
	StateUnassessed         ConceptState = "unassessed"
	StateNeedsReinforcement ConceptState = "needs-reinforcement"
	StateMastered           ConceptState = "mastered"
	StateGap                ConceptState = "gap" // reviewed once, still below the remediation bar
)

// Transition triggers.
const (
	TriggerDiagnostic        = "diagnostic"
	TriggerRemediationPassed = "remediation-passed"
	TriggerRemediationFailed = "remediation-failed"
)

// ErrInvalidTransition is returned when a state change would break the
// journey's monotonic ordering (e.g. mastered back to needs-reinforcement).
var ErrInvalidTransition = errors.New("invalid concept state transition")

// StateTransition records a concept state change for display and reporting.
type StateTransition struct {
	ConceptID string
	From      ConceptState
	To        ConceptState
	Trigger   string
}

// allowed lists the legal forward moves. Mastered and gap are terminal.
var allowed = map[ConceptState][]ConceptState{
	StateUnassessed:         {StateMastered, StateNeedsReinforcement},
	StateNeedsReinforcement: {StateMastered, StateGap},
}

// Ledger is the per-concept state for one journey. It is a value: Apply
// returns a new ledger and never mutates the receiver.
type Ledger map[string]ConceptState

// State returns the concept's current state, StateUnassessed if unseen.
func (l Ledger) State(conceptID string) ConceptState {
	if s, ok := l[conceptID]; ok {
		return s
	}
	return StateUnassessed
}

// Apply moves a concept to a new state.
func (l Ledger) Apply(conceptID string, to ConceptState, trigger string) (Ledger, StateTransition, error) {
	from := l.State(conceptID)
	t := StateTransition{ConceptID: conceptID, From: from, To: to, Trigger: trigger}

	legal := false
	for _, s := range allowed[from] {
		if s == to {
			legal = true
			break
		}
	}
	if !legal {
		return l, t, fmt.Errorf("%w: %q %s -> %s", ErrInvalidTransition, conceptID, from, to)
	}

	next := maps.Clone(l)
	if next == nil {
		next = Ledger{}
	}
	next[conceptID] = to
	return next, t, nil
}

// InState returns the set of concepts currently in state s.
func (l Ledger) InState(s ConceptState) ConceptSet {
	out := ConceptSet{}
	for id, cs := range l {
		if cs == s {
			out.Add(id)
		}
	}
	return out
}

// Mastered returns the set of mastered concepts.
func (l Ledger) Mastered() ConceptSet {
	return l.InState(StateMastered)
}
