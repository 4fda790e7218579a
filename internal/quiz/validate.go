package quiz

import "fmt"

// ValidateSet performs all structural checks on an ordered question set.
// Returns a *ConfigError describing every problem found, or nil if valid.
func ValidateSet(questions []Question) error {
	if len(questions) == 0 {
		return &ConfigError{Problems: []error{ErrEmptyQuestionSet}}
	}

	var errs []error
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("%w: question %d has an empty id", ErrConfig, i+1))
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Errorf("%w: question %q", ErrDuplicateID, q.ID))
		}
		seen[q.ID] = true

		if len(q.Options) == 0 {
			errs = append(errs, fmt.Errorf("%w: question %q", ErrNoOptions, q.ID))
			continue
		}

		optSeen := make(map[string]bool, len(q.Options))
		for i, o := range q.Options {
			if o.ID == "" {
				errs = append(errs, fmt.Errorf("%w: option %d in question %q has an empty id", ErrConfig, i+1, q.ID))
				continue
			}
			if optSeen[o.ID] {
				errs = append(errs, fmt.Errorf("%w: option %q in question %q", ErrDuplicateID, o.ID, q.ID))
			}
			optSeen[o.ID] = true
		}

		if q.CorrectOptionID == "" {
			errs = append(errs, fmt.Errorf("%w: question %q has no correct option", ErrCorrectMissing, q.ID))
		} else if !optSeen[q.CorrectOptionID] {
			errs = append(errs, fmt.Errorf("%w: question %q references option %q", ErrCorrectMissing, q.ID, q.CorrectOptionID))
		}
	}

	if len(errs) > 0 {
		return &ConfigError{Problems: errs}
	}
	return nil
}
