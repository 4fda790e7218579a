package conceptgraph

import (
	"fmt"
	"strings"
)

// graphError lists every structural problem found while building a graph.
type graphError struct {
	problems []string
}

func (e *graphError) Error() string {
	return "concept graph validation failed:\n  " + strings.Join(e.problems, "\n  ")
}

// checkReferences reports empty or repeated ids and prerequisites that name
// no declared concept. Cycles are found while ordering, in New.
func checkReferences(concepts []Concept) []string {
	var problems []string
	declared := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		if c.ID == "" {
			problems = append(problems, "concept with empty ID")
			continue
		}
		if declared[c.ID] {
			problems = append(problems, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		declared[c.ID] = true
	}

	for _, c := range concepts {
		for _, p := range c.Prerequisites {
			if !declared[p] {
				problems = append(problems, fmt.Sprintf("concept %q references nonexistent prerequisite %q", c.ID, p))
			}
		}
	}
	return problems
}
