package mastery

// ConceptMap maps a question ID to the concept it exercises.
// It need not be total: unmapped questions count toward the score only.
type ConceptMap map[string]string

// Outcome is the correctness of a single answered question.
type Outcome struct {
	QuestionID string
	Correct    bool
}

// Classification is the concept-level verdict for one attempt.
// Mastered and NeedsReinforcement never share a member.
type Classification struct {
	Mastered           ConceptSet
	NeedsReinforcement ConceptSet
}

// Classify maps per-question correctness onto concepts.
// A concept answered both correctly and incorrectly within the same attempt
// resolves to needs-reinforcement only.
func Classify(outcomes []Outcome, cmap ConceptMap) Classification {
	correct := ConceptSet{}
	incorrect := ConceptSet{}

	for _, o := range outcomes {
		concept, ok := cmap[o.QuestionID]
		if !ok || concept == "" {
			continue
		}
		if o.Correct {
			correct.Add(concept)
		} else {
			incorrect.Add(concept)
		}
	}

	return Classification{
		Mastered:           correct.Difference(incorrect),
		NeedsReinforcement: incorrect,
	}
}
