package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/pathwise/internal/conceptgraph"
	"github.com/abhisek/pathwise/internal/quiz"
)

// ErrInvalid is wrapped by every curriculum-level configuration problem.
var ErrInvalid = errors.New("invalid curriculum")

// ValidationError lists every problem found in a curriculum.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("curriculum validation failed (%d problems):\n  %s",
		len(e.Problems), strings.Join(msgs, "\n  "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Validate checks the curriculum and builds its concept graph. Missing
// remedial sets are not reported here; see Gaps.
func (c *Curriculum) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.ID == "" {
		add("missing id")
	}
	for _, t := range []struct {
		name string
		v    int
	}{
		{"thresholds.diagnostic_pass", c.Thresholds.DiagnosticPass},
		{"thresholds.remediation", c.Thresholds.Remediation},
	} {
		if t.v < 0 || t.v > 100 {
			add("%s must be between 0 and 100, got %d", t.name, t.v)
		}
	}

	graph, err := conceptgraph.New(c.Concepts)
	if err != nil {
		problems = append(problems, fmt.Errorf("%w: %w", ErrInvalid, err))
	}

	if err := quiz.ValidateSet(c.Diagnostic.Questions); err != nil {
		problems = append(problems, fmt.Errorf("diagnostic: %w", err))
	}

	// Question ids must be unique across every stage so the concept map
	// is unambiguous.
	seen := make(map[string]string)
	note := func(stage string, qs []quiz.Question) {
		for _, q := range qs {
			if prev, ok := seen[q.ID]; ok && prev != stage {
				add("question %q appears in both %s and %s", q.ID, prev, stage)
				continue
			}
			seen[q.ID] = stage
		}
	}
	note("diagnostic", c.Diagnostic.Questions)

	conceptIDs := make([]string, 0, len(c.Remedial))
	for id := range c.Remedial {
		conceptIDs = append(conceptIDs, id)
	}
	slices.Sort(conceptIDs)

	known := make(map[string]bool, len(c.Concepts))
	for _, concept := range c.Concepts {
		known[concept.ID] = true
	}

	for _, conceptID := range conceptIDs {
		set := c.Remedial[conceptID]
		if !known[conceptID] {
			add("remedial set for unknown concept %q", conceptID)
		}
		if err := quiz.ValidateSet(set.Questions); err != nil {
			problems = append(problems, fmt.Errorf("remedial %s: %w", conceptID, err))
		}
		note("remedial "+conceptID, set.Questions)
	}

	questionIDs := make([]string, 0, len(c.ConceptMap))
	for qid := range c.ConceptMap {
		questionIDs = append(questionIDs, qid)
	}
	slices.Sort(questionIDs)
	for _, qid := range questionIDs {
		if _, ok := seen[qid]; !ok {
			add("concept map entry %q names an unknown question", qid)
		}
		if conceptID := c.ConceptMap[qid]; !known[conceptID] {
			add("question %q maps to unknown concept %q", qid, conceptID)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	c.graph = graph
	return nil
}
