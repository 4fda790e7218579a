package quiz

import "fmt"

// Option is a single selectable answer within a Question.
type Option struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// Question is one multiple-choice item. Questions are immutable once defined.
type Question struct {
	ID              string   `yaml:"id" json:"id"`
	Prompt          string   `yaml:"prompt" json:"prompt"`
	Options         []Option `yaml:"options" json:"options"`
	CorrectOptionID string   `yaml:"correct" json:"correct"`
	Explanation     string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// IsCorrect reports whether optionID is the correct answer.
// An empty selection is never correct.
func (q Question) IsCorrect(optionID string) bool {
	return optionID != "" && optionID == q.CorrectOptionID
}

// HasOption reports whether optionID belongs to this question.
func (q Question) HasOption(optionID string) bool {
	_, ok := q.Option(optionID)
	return ok
}

// Option returns the option with the given ID.
func (q Question) Option(optionID string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the correct option. The boolean is false only for
// questions that failed validation.
func (q Question) CorrectOption() (Option, bool) {
	return q.Option(q.CorrectOptionID)
}

// ExplanationText returns the authored explanation, or a generic one naming
// the correct option when none was provided.
func (q Question) ExplanationText() string {
	if q.Explanation != "" {
		return q.Explanation
	}
	answer := q.CorrectOptionID
	if o, ok := q.CorrectOption(); ok {
		answer = o.Text
	}
	return fmt.Sprintf("The correct answer is %s. Make sure to understand why this is the correct solution before moving to the next question.", answer)
}
