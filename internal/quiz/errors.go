package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is the root of all question-set configuration errors.
// Configuration errors are fatal to the current stage.
var ErrConfig = errors.New("quiz configuration error")

var (
	ErrEmptyQuestionSet = fmt.Errorf("%w: question set is empty", ErrConfig)
	ErrDuplicateID      = fmt.Errorf("%w: duplicate id", ErrConfig)
	ErrNoOptions        = fmt.Errorf("%w: question has no options", ErrConfig)
	ErrCorrectMissing   = fmt.Errorf("%w: correct option not among options", ErrConfig)
)

// Usage errors. The attempt is returned unchanged alongside them.
var (
	ErrNoSelection      = errors.New("current question has no selected answer")
	ErrUnknownQuestion  = errors.New("question is not part of this attempt")
	ErrAttemptSubmitted = errors.New("attempt already submitted")
	ErrNotSubmitted     = errors.New("attempt not yet submitted")
	ErrNotStarted       = errors.New("attempt was not created with NewAttempt")
)

// ConfigError collects every problem found while validating a question set.
type ConfigError struct {
	Problems []error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid question set:\n  " + strings.Join(msgs, "\n  ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ConfigError) Unwrap() []error {
	return e.Problems
}
