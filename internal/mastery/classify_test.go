package mastery

import (
	"math/rand"
	"slices"
	"testing"
)

func TestClassify_Disjoint(t *testing.T) {
	cmap := ConceptMap{"Q1": "add", "Q2": "add", "Q3": "mult", "Q4": "div"}
	outcomes := []Outcome{
		{QuestionID: "Q1", Correct: true},
		{QuestionID: "Q2", Correct: false},
		{QuestionID: "Q3", Correct: true},
		{QuestionID: "Q4", Correct: false},
	}

	got := Classify(outcomes, cmap)

	if !slices.Equal(got.Mastered.Sorted(), []string{"mult"}) {
		t.Errorf("Mastered = %v, want [mult]", got.Mastered.Sorted())
	}
	if !slices.Equal(got.NeedsReinforcement.Sorted(), []string{"add", "div"}) {
		t.Errorf("NeedsReinforcement = %v, want [add div]", got.NeedsReinforcement.Sorted())
	}
	if got.Mastered.Intersects(got.NeedsReinforcement) {
		t.Error("a concept is both mastered and needs reinforcement")
	}
}

func TestClassify_UnmappedQuestionsIgnored(t *testing.T) {
	got := Classify([]Outcome{
		{QuestionID: "Q1", Correct: false},
		{QuestionID: "Q2", Correct: true},
	}, ConceptMap{"Q2": "simplify"})

	if got.NeedsReinforcement.Len() != 0 {
		t.Errorf("NeedsReinforcement = %v, want empty", got.NeedsReinforcement.Sorted())
	}
	if !got.Mastered.Has("simplify") {
		t.Error("simplify should be mastered")
	}
}

func TestClassify_EmptyInputs(t *testing.T) {
	got := Classify(nil, nil)
	if got.Mastered == nil || got.NeedsReinforcement == nil {
		t.Fatal("Classify should return non-nil sets")
	}
	if got.Mastered.Len()+got.NeedsReinforcement.Len() != 0 {
		t.Error("expected empty classification")
	}
}

func TestClassify_OrderIndependent(t *testing.T) {
	cmap := ConceptMap{"Q1": "a", "Q2": "b", "Q3": "a", "Q4": "c", "Q5": "b", "Q6": "d"}
	outcomes := []Outcome{
		{"Q1", true}, {"Q2", false}, {"Q3", false}, {"Q4", true}, {"Q5", true}, {"Q6", true},
	}
	want := Classify(outcomes, cmap)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(outcomes)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := Classify(shuffled, cmap)
		if !slices.Equal(got.Mastered.Sorted(), want.Mastered.Sorted()) ||
			!slices.Equal(got.NeedsReinforcement.Sorted(), want.NeedsReinforcement.Sorted()) {
			t.Fatalf("order-dependent result: got %v/%v, want %v/%v",
				got.Mastered.Sorted(), got.NeedsReinforcement.Sorted(),
				want.Mastered.Sorted(), want.NeedsReinforcement.Sorted())
		}
	}
}

func TestConceptSet_Operations(t *testing.T) {
	a := NewConceptSet("x", "y")
	b := NewConceptSet("y", "z")

	if u := a.Union(b).Sorted(); !slices.Equal(u, []string{"x", "y", "z"}) {
		t.Errorf("Union = %v", u)
	}
	if d := a.Difference(b).Sorted(); !slices.Equal(d, []string{"x"}) {
		t.Errorf("Difference = %v", d)
	}
	if !a.Intersects(b) {
		t.Error("Intersects = false, want true")
	}
	if a.Len() != 2 {
		t.Error("Union mutated receiver")
	}

	var nilSet ConceptSet
	if nilSet.Has("x") || nilSet.Len() != 0 {
		t.Error("nil set should be empty")
	}
	if c := nilSet.Clone(); c == nil {
		t.Error("Clone of nil set should be non-nil")
	}
}
