package quiz

import (
	"math"
	"slices"

	"github.com/abhisek/pathwise/internal/mastery"
)

// Result is the outcome of a submitted attempt. Immutable once produced.
type Result struct {
	Score                int // 0-100, rounded
	Correct              int
	Total                int
	IncorrectQuestionIDs []string // in question order
	Outcomes             []mastery.Outcome
	Mastered             mastery.ConceptSet
	NeedsReinforcement   mastery.ConceptSet
}

// Score returns round(100 * correct / total). A zero total scores 0; the
// controller never produces one because empty sets are rejected up front.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// Passed reports whether the score meets threshold.
func (r Result) Passed(threshold int) bool {
	return r.Score >= threshold
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	r.IncorrectQuestionIDs = slices.Clone(r.IncorrectQuestionIDs)
	r.Outcomes = slices.Clone(r.Outcomes)
	r.Mastered = r.Mastered.Clone()
	r.NeedsReinforcement = r.NeedsReinforcement.Clone()
	return r
}
