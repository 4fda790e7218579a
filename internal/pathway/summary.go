package pathway

import (
	"fmt"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/mastery"
)

const (
	headlineAllMastered = "Congratulations! You've mastered all the concepts in this chapter!"
	headlinePathDone    = "Congratulations on completing your personalized learning path!"
)

// AttemptSummary is one line of the attempt history, ready for display.
type AttemptSummary struct {
	Title     string
	Score     int
	Passed    bool
	Incorrect []string
}

// Summary is the presentation-ready view of a journey.
type Summary struct {
	Title    string
	Headline string
	Complete bool

	// Final mastery.
	Mastered      []string
	NeedsPractice []string

	// Diagnostic framing.
	DiagnosticScore  int
	DiagnosticPassed bool
	Understands      []string
	NeedsSupport     []string
	LearningPath     []string

	Attempts  []AttemptSummary
	NextSteps []string
}

// Summarize builds the presentation view of st. All concept lists are
// labels in priority order.
func Summarize(cur *curriculum.Curriculum, st State) Summary {
	sum := Summary{
		Title:     cur.Title,
		Complete:  st.Done(),
		Mastered:  cur.Labels(cur.Order(st.Mastered)),
		NextSteps: cur.NextSteps,
	}

	if d := st.Diagnostic; d != nil {
		sum.DiagnosticScore = d.Score
		sum.DiagnosticPassed = d.Passed(cur.Thresholds.DiagnosticPass)
		sum.Understands = cur.Labels(cur.Order(d.Mastered))
		needs := cur.Order(d.NeedsReinforcement)
		sum.NeedsSupport = cur.Labels(needs)

		if len(needs) == 0 {
			if cur.LearningPath.Advanced != "" {
				sum.LearningPath = append(sum.LearningPath, cur.LearningPath.Advanced)
			}
		} else {
			for _, id := range needs {
				sum.LearningPath = append(sum.LearningPath, "Concept Review: "+cur.Label(id))
			}
		}
		if cur.LearningPath.Enrichment != "" {
			sum.LearningPath = append(sum.LearningPath, cur.LearningPath.Enrichment)
		}
	}

	// Concepts never cleared: reviewed below the mark, plus any still queued.
	open := mastery.NewConceptSet(st.Gaps...)
	for _, id := range st.Unresolved {
		open.Add(id)
	}
	sum.NeedsPractice = cur.Labels(cur.Order(open))

	if sum.Complete {
		sum.Headline = headlinePathDone
		if st.Reviews() == 0 && len(sum.NeedsPractice) == 0 {
			sum.Headline = headlineAllMastered
		}
	}

	for _, h := range st.History {
		title := cur.Diagnostic.Title
		if h.Stage == StageConceptReview {
			title = fmt.Sprintf("Concept Review: %s", cur.Label(h.Concept))
		}
		sum.Attempts = append(sum.Attempts, AttemptSummary{
			Title:     title,
			Score:     h.Score,
			Passed:    h.Passed,
			Incorrect: h.IncorrectQuestionIDs,
		})
	}
	return sum
}
