package mastery

import (
	"errors"
	"testing"
)

func TestLedger_DiagnosticTransitions(t *testing.T) {
	var l Ledger
	if l.State("add") != StateUnassessed {
		t.Fatalf("State = %s, want unassessed", l.State("add"))
	}

	l2, tr, err := l.Apply("add", StateNeedsReinforcement, TriggerDiagnostic)
	if err != nil {
		t.Fatal(err)
	}
	if tr.From != StateUnassessed || tr.To != StateNeedsReinforcement {
		t.Errorf("transition = %+v", tr)
	}
	if l.State("add") != StateUnassessed {
		t.Error("Apply mutated receiver")
	}
	if l2.State("add") != StateNeedsReinforcement {
		t.Errorf("State = %s, want needs-reinforcement", l2.State("add"))
	}
}

func TestLedger_RemediationPassed(t *testing.T) {
	l, _, _ := Ledger{}.Apply("div", StateNeedsReinforcement, TriggerDiagnostic)
	l, tr, err := l.Apply("div", StateMastered, TriggerRemediationPassed)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Trigger != TriggerRemediationPassed {
		t.Errorf("Trigger = %s", tr.Trigger)
	}
	if !l.Mastered().Has("div") {
		t.Error("div should be mastered")
	}
}

func TestLedger_NoRegression(t *testing.T) {
	l, _, _ := Ledger{}.Apply("mult", StateMastered, TriggerDiagnostic)

	for _, to := range []ConceptState{StateNeedsReinforcement, StateGap, StateUnassessed} {
		next, _, err := l.Apply("mult", to, TriggerDiagnostic)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("mastered -> %s: got %v, want ErrInvalidTransition", to, err)
		}
		if next.State("mult") != StateMastered {
			t.Errorf("mastered -> %s changed state to %s", to, next.State("mult"))
		}
	}
}

func TestLedger_GapIsTerminal(t *testing.T) {
	l, _, _ := Ledger{}.Apply("add", StateNeedsReinforcement, TriggerDiagnostic)
	l, _, _ = l.Apply("add", StateGap, TriggerRemediationFailed)

	if _, _, err := l.Apply("add", StateMastered, TriggerRemediationPassed); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("gap -> mastered: got %v, want ErrInvalidTransition", err)
	}
	if got := l.InState(StateGap).Sorted(); len(got) != 1 || got[0] != "add" {
		t.Errorf("InState(gap) = %v", got)
	}
}
