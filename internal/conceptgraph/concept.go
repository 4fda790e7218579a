package conceptgraph

// Concept is an atomic skill a question can be tagged with.
type Concept struct {
	ID            string   `yaml:"id"`
	Label         string   `yaml:"label"`
	Description   string   `yaml:"description,omitempty"`
	Prerequisites []string `yaml:"prerequisites,omitempty"`
}

// DisplayName returns the label, falling back to the ID.
func (c Concept) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}
