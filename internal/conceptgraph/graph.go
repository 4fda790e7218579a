package conceptgraph

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/abhisek/pathwise/internal/mastery"
)

// Graph holds a concept DAG with a precomputed priority order.
// A Graph is immutable after New and safe to share between journeys.
type Graph struct {
	concepts   []Concept
	byID       map[string]*Concept
	dependents map[string][]string
	order      []string
	rank       map[string]int
}

// New validates the concepts and builds the graph. Concepts keep their
// declared order as the tiebreak whenever prerequisites leave a choice.
func New(concepts []Concept) (*Graph, error) {
	if problems := checkReferences(concepts); len(problems) > 0 {
		return nil, &graphError{problems: problems}
	}

	gr := &Graph{
		concepts:   slices.Clone(concepts),
		byID:       make(map[string]*Concept, len(concepts)),
		dependents: make(map[string][]string),
		rank:       make(map[string]int, len(concepts)),
	}

	declared := make(map[string]int, len(concepts))
	for i := range gr.concepts {
		gr.byID[gr.concepts[i].ID] = &gr.concepts[i]
		declared[gr.concepts[i].ID] = i
	}

	for i := range gr.concepts {
		for _, prereqID := range gr.concepts[i].Prerequisites {
			gr.dependents[prereqID] = append(gr.dependents[prereqID], gr.concepts[i].ID)
		}
	}

	// Kahn's algorithm, always taking the earliest-declared ready concept.
	inDegree := make(map[string]int, len(concepts))
	var ready []string
	for _, c := range gr.concepts {
		inDegree[c.ID] = len(c.Prerequisites)
		if inDegree[c.ID] == 0 {
			ready = append(ready, c.ID)
		}
	}

	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return declared[ready[i]] < declared[ready[j]]
		})
		id := ready[0]
		ready = ready[1:]

		gr.rank[id] = len(gr.order)
		gr.order = append(gr.order, id)

		for _, depID := range gr.dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				ready = append(ready, depID)
			}
		}
	}

	if len(gr.order) < len(gr.concepts) {
		var stuck []string
		for _, c := range gr.concepts {
			if inDegree[c.ID] > 0 {
				stuck = append(stuck, c.ID)
			}
		}
		return nil, &graphError{problems: []string{
			"cycle detected involving concepts: " + strings.Join(stuck, ", "),
		}}
	}

	return gr, nil
}

// Get returns a concept by ID.
func (g *Graph) Get(id string) (Concept, error) {
	c, ok := g.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *c, nil
}

// Has reports whether the graph knows the concept.
func (g *Graph) Has(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Label returns the human-readable label for a concept, or the ID itself
// for unknown concepts.
func (g *Graph) Label(id string) string {
	if c, ok := g.byID[id]; ok {
		return c.DisplayName()
	}
	return id
}

// Labels maps ids to labels, preserving order.
func (g *Graph) Labels(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.Label(id)
	}
	return out
}

// All returns every concept in priority order.
func (g *Graph) All() []Concept {
	out := make([]Concept, len(g.order))
	for i, id := range g.order {
		out[i] = *g.byID[id]
	}
	return out
}

// PriorityOrder returns every concept ID in priority order.
func (g *Graph) PriorityOrder() []string {
	return slices.Clone(g.order)
}

// Order returns the members of set in priority order. Concepts unknown to
// the graph follow the known ones, sorted lexicographically.
func (g *Graph) Order(set mastery.ConceptSet) []string {
	var known, unknown []string
	for _, id := range set.Sorted() {
		if _, ok := g.rank[id]; ok {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		return g.rank[known[i]] < g.rank[known[j]]
	})
	return append(known, unknown...)
}

// Prerequisites returns the direct prerequisites of a concept.
func (g *Graph) Prerequisites(id string) []Concept {
	c, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Concept, 0, len(c.Prerequisites))
	for _, prereqID := range c.Prerequisites {
		if p, ok := g.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns concepts that directly build on the given concept.
func (g *Graph) Dependents(id string) []Concept {
	depIDs := g.dependents[id]
	result := make([]Concept, 0, len(depIDs))
	for _, depID := range depIDs {
		if c, ok := g.byID[depID]; ok {
			result = append(result, *c)
		}
	}
	return result
}

// Len returns the number of concepts.
func (g *Graph) Len() int {
	return len(g.concepts)
}
