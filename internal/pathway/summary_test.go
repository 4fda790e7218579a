package pathway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/pathwise/internal/quiz"
)

func TestSummarize_FullMastery(t *testing.T) {
	cur := fractions(t)

	st := reduce(t, cur, Initial(), DiagnosticSubmitted{Result: diagResult(100, allConcepts, nil)})
	st = reduce(t, cur, st, TransitionElapsed{})
	sum := Summarize(cur, st)

	assert.True(t, sum.Complete)
	assert.Equal(t, headlineAllMastered, sum.Headline)
	assert.Equal(t, []string{
		"Proper Fractions",
		"Simplification of Fractions",
		"Addition with Unlike Denominators",
		"Multiplication of Fractions",
		"Division using Reciprocal",
	}, sum.Mastered)
	assert.Empty(t, sum.NeedsPractice)
	assert.Equal(t, []string{
		"Advanced Topics: Converting Fractions to Decimals",
		"Visual & Real-world Problems to deepen understanding",
	}, sum.LearningPath)
	assert.True(t, sum.DiagnosticPassed)
	assert.Len(t, sum.NextSteps, 3)
}

func TestSummarize_WithGap(t *testing.T) {
	cur := fractions(t)

	st := reduce(t, cur, Initial(), DiagnosticSubmitted{
		Result: diagResult(40, []string{proper, simplify, multiply}, []string{division, addition}),
	})

	mid := Summarize(cur, st)
	assert.False(t, mid.Complete)
	assert.Empty(t, mid.Headline)
	assert.False(t, mid.DiagnosticPassed)
	assert.Equal(t, []string{
		"Concept Review: Addition with Unlike Denominators",
		"Concept Review: Division using Reciprocal",
		"Visual & Real-world Problems to deepen understanding",
	}, mid.LearningPath)
	assert.Equal(t, []string{"Addition with Unlike Denominators", "Division using Reciprocal"}, mid.NeedsSupport)

	st = reduce(t, cur, st, TransitionElapsed{})
	st = reduce(t, cur, st, ReviewSubmitted{Result: quiz.Result{Score: 67, IncorrectQuestionIDs: []string{"Q7"}}})
	st = reduce(t, cur, st, ReviewSubmitted{Result: quiz.Result{Score: 100}})
	sum := Summarize(cur, st)

	assert.Equal(t, headlinePathDone, sum.Headline)
	assert.Equal(t, []string{"Addition with Unlike Denominators"}, sum.NeedsPractice)
	assert.Contains(t, sum.Mastered, "Division using Reciprocal")
	assert.NotContains(t, sum.Mastered, "Addition with Unlike Denominators")

	if assert.Len(t, sum.Attempts, 3) {
		assert.Equal(t, "Diagnostic Assessment", sum.Attempts[0].Title)
		assert.Equal(t, "Concept Review: Addition with Unlike Denominators", sum.Attempts[1].Title)
		assert.Equal(t, []string{"Q7"}, sum.Attempts[1].Incorrect)
		assert.False(t, sum.Attempts[1].Passed)
		assert.True(t, sum.Attempts[2].Passed)
	}
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "concept-review", StageConceptReview.String())
	assert.Equal(t, "unknown", Stage(42).String())
	assert.True(t, StageDiagnostic.Interactive())
	assert.False(t, StageTransition.Interactive())
}
