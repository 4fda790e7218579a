package quiz

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_ExplanationText(t *testing.T) {
	q := Question{
		ID:              "Q1",
		Options:         []Option{{ID: "A", Text: "5/4"}, {ID: "C", Text: "3/8"}},
		CorrectOptionID: "C",
	}
	assert.Equal(t,
		"The correct answer is 3/8. Make sure to understand why this is the correct solution before moving to the next question.",
		q.ExplanationText())

	q.Explanation = "A proper fraction has a smaller numerator."
	assert.Equal(t, q.Explanation, q.ExplanationText())
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := Question{CorrectOptionID: "B"}
	assert.True(t, q.IsCorrect("B"))
	assert.False(t, q.IsCorrect("A"))
	assert.False(t, q.IsCorrect(""))
}

func TestValidateSet(t *testing.T) {
	good := Question{ID: "Q1", Options: []Option{{ID: "A"}, {ID: "B"}}, CorrectOptionID: "A"}

	tests := []struct {
		name    string
		set     []Question
		wantErr error
		wantMsg string
	}{
		{name: "valid", set: []Question{good}},
		{name: "empty", set: nil, wantErr: ErrEmptyQuestionSet},
		{
			name:    "duplicate question",
			set:     []Question{good, good},
			wantErr: ErrDuplicateID,
			wantMsg: `question "Q1"`,
		},
		{
			name:    "no options",
			set:     []Question{{ID: "Q2", CorrectOptionID: "A"}},
			wantErr: ErrNoOptions,
		},
		{
			name:    "correct option missing",
			set:     []Question{{ID: "Q3", Options: []Option{{ID: "A"}}, CorrectOptionID: "Z"}},
			wantErr: ErrCorrectMissing,
			wantMsg: `option "Z"`,
		},
		{
			name:    "duplicate option",
			set:     []Question{{ID: "Q4", Options: []Option{{ID: "A"}, {ID: "A"}}, CorrectOptionID: "A"}},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "empty option id",
			set:     []Question{{ID: "Q5", Options: []Option{{ID: "", Text: "a"}, {ID: "B"}}, CorrectOptionID: "B"}},
			wantErr: ErrConfig,
			wantMsg: `option 1 in question "Q5" has an empty id`,
		},
		{
			name:    "empty correct option",
			set:     []Question{{ID: "Q6", Options: []Option{{ID: "", Text: "a"}, {ID: "B"}}, CorrectOptionID: ""}},
			wantErr: ErrCorrectMissing,
			wantMsg: `question "Q6" has no correct option`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSet(tt.set)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrConfig)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			if tt.wantMsg != "" {
				assert.True(t, strings.Contains(err.Error(), tt.wantMsg), "error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateSet_ReportsAllProblems(t *testing.T) {
	err := ValidateSet([]Question{
		{ID: "Q1", CorrectOptionID: "A"},
		{ID: "Q2", Options: []Option{{ID: "A"}}, CorrectOptionID: "B"},
	})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Len(t, cfgErr.Problems, 2)
}
