package mastery

import (
	"maps"
	"slices"
)

// ConceptSet is a set of concept IDs. Iteration via Sorted is deterministic.
// A nil set is safe for reads; use NewConceptSet before calling Add.
type ConceptSet map[string]struct{}

// NewConceptSet returns a set containing ids.
func NewConceptSet(ids ...string) ConceptSet {
	s := make(ConceptSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s ConceptSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports membership. Safe on a nil set.
func (s ConceptSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s ConceptSet) Len() int {
	return len(s)
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (s ConceptSet) Clone() ConceptSet {
	if s == nil {
		return ConceptSet{}
	}
	return maps.Clone(s)
}

// Union returns a new set with the members of both sets.
func (s ConceptSet) Union(other ConceptSet) ConceptSet {
	out := s.Clone()
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Difference returns a new set with the members of s not in other.
func (s ConceptSet) Difference(other ConceptSet) ConceptSet {
	out := make(ConceptSet, len(s))
	for id := range s {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Intersects reports whether the two sets share any member.
func (s ConceptSet) Intersects(other ConceptSet) bool {
	for id := range s {
		if other.Has(id) {
			return true
		}
	}
	return false
}

// Sorted returns the members in lexicographic order.
func (s ConceptSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
