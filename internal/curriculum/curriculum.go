package curriculum

import (
	"slices"

	"github.com/abhisek/pathwise/internal/conceptgraph"
	"github.com/abhisek/pathwise/internal/mastery"
	"github.com/abhisek/pathwise/internal/quiz"
)

// Default thresholds. The diagnostic pass mark only frames the diagnostic
// result; the remediation mark decides whether a reviewed concept counts
// as mastered.
const (
	DefaultDiagnosticPass = 60
	DefaultRemediation    = 70
)

// Thresholds holds the two independent pass marks, as percentages.
type Thresholds struct {
	DiagnosticPass int `yaml:"diagnostic_pass"`
	Remediation    int `yaml:"remediation"`
}

// DefaultThresholds returns the stock 60/70 pass marks.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DiagnosticPass: DefaultDiagnosticPass,
		Remediation:    DefaultRemediation,
	}
}

// QuizSet is one stage's question sequence with its presentation text.
type QuizSet struct {
	Heading     string          `yaml:"heading,omitempty"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description,omitempty"`
	Questions   []quiz.Question `yaml:"questions"`
}

// LearningPath holds the fixed lines shown when the diagnostic triggers no
// concept reviews, and the enrichment line shown in every case.
type LearningPath struct {
	Advanced   string `yaml:"advanced"`
	Enrichment string `yaml:"enrichment"`
}

// Curriculum bundles everything a journey needs: concepts, the diagnostic,
// the question-to-concept map and one remedial set per concept.
type Curriculum struct {
	ID           string                 `yaml:"id"`
	Title        string                 `yaml:"title"`
	Chapter      string                 `yaml:"chapter"`
	Description  string                 `yaml:"description,omitempty"`
	Thresholds   Thresholds             `yaml:"thresholds"`
	Concepts     []conceptgraph.Concept `yaml:"concepts"`
	Diagnostic   QuizSet                `yaml:"diagnostic"`
	ConceptMap   mastery.ConceptMap     `yaml:"concept_map"`
	Remedial     map[string]QuizSet     `yaml:"remedial"`
	LearningPath LearningPath           `yaml:"learning_path"`
	NextSteps    []string               `yaml:"next_steps,omitempty"`

	graph *conceptgraph.Graph
}

// Graph returns the concept graph. Only valid on a curriculum returned by
// Parse, Load, Builtin or New.
func (c *Curriculum) Graph() *conceptgraph.Graph {
	return c.graph
}

// Label returns the presentation label for a concept.
func (c *Curriculum) Label(conceptID string) string {
	if c.graph == nil {
		return conceptID
	}
	return c.graph.Label(conceptID)
}

// Labels maps concept ids to their labels, preserving order.
func (c *Curriculum) Labels(conceptIDs []string) []string {
	if c.graph == nil {
		return slices.Clone(conceptIDs)
	}
	return c.graph.Labels(conceptIDs)
}

// RemedialFor returns the remedial set bound to a concept.
func (c *Curriculum) RemedialFor(conceptID string) (QuizSet, bool) {
	set, ok := c.Remedial[conceptID]
	if !ok || len(set.Questions) == 0 {
		return QuizSet{}, false
	}
	return set, true
}

// Order sorts a concept set into the curriculum's priority order.
func (c *Curriculum) Order(set mastery.ConceptSet) []string {
	if c.graph == nil {
		return set.Sorted()
	}
	return c.graph.Order(set)
}

// WithThresholds returns a shallow copy of the curriculum using t.
func (c *Curriculum) WithThresholds(t Thresholds) *Curriculum {
	cp := *c
	cp.Thresholds = t
	return &cp
}

// Gaps lists the concepts that diagnostic questions map to but that have no
// remedial set, in priority order. A journey that needs one of these fails.
func (c *Curriculum) Gaps() []string {
	missing := mastery.NewConceptSet()
	for _, conceptID := range c.ConceptMap {
		if _, ok := c.RemedialFor(conceptID); !ok {
			missing.Add(conceptID)
		}
	}
	return c.Order(missing)
}

// QuestionCount returns the number of questions across all stages.
func (c *Curriculum) QuestionCount() int {
	n := len(c.Diagnostic.Questions)
	for _, set := range c.Remedial {
		n += len(set.Questions)
	}
	return n
}
