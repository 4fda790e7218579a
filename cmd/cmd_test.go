package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/quiz"
)

func newPreviewJourney(t *testing.T, explanations bool) *pathway.Journey {
	t.Helper()
	cur, err := curriculum.Builtin("fractions")
	require.NoError(t, err)
	j, err := pathway.New(cur,
		pathway.WithExplanations(explanations),
		pathway.WithTransitionDelay(time.Hour))
	require.NoError(t, err)
	t.Cleanup(j.Stop)
	return j
}

func TestRunPreview_FullJourney(t *testing.T) {
	j := newPreviewJourney(t, false)
	in := strings.NewReader(strings.Join([]string{
		"3", "1", "1", "3", "4", // diagnostic, Q3 wrong
		"", // transition
		"2", "B", "c", // addition review
	}, "\n") + "\n")
	var out bytes.Buffer

	require.NoError(t, runPreview(j, in, &out))

	got := out.String()
	assert.Contains(t, got, "Diagnostic score: 80%")
	assert.Contains(t, got, "Concept Review: Addition with Unlike Denominators")
	assert.Contains(t, got, "Congratulations on completing your personalized learning path!")
	assert.Equal(t, pathway.StageResults, j.State().Stage)
}

func TestRunPreview_Reprompts(t *testing.T) {
	j := newPreviewJourney(t, false)
	in := strings.NewReader("9\nzz\n3\n")
	var out bytes.Buffer

	err := runPreview(j, in, &out)

	require.ErrorIs(t, err, errInputClosed)
	assert.Equal(t, 2, strings.Count(out.String(), "Pick 1-4."))
	a, ok := j.Attempt()
	require.True(t, ok)
	assert.Equal(t, 1, a.Cursor())
}

func TestRunPreview_Explanation(t *testing.T) {
	j := newPreviewJourney(t, true)
	in := strings.NewReader("1\n")
	var out bytes.Buffer

	require.ErrorIs(t, runPreview(j, in, &out), errInputClosed)
	assert.Contains(t, out.String(), "✗ Not quite. Correct answer:")

	a, _ := j.Attempt()
	assert.Equal(t, 1, a.Cursor())
}

func TestRunPreview_HaltsOnMissingReviewSet(t *testing.T) {
	cur, err := curriculum.Parse([]byte(gapCurriculum))
	require.NoError(t, err)
	j, err := pathway.New(cur, pathway.WithTransitionDelay(time.Hour))
	require.NoError(t, err)

	err = runPreview(j, strings.NewReader("B\n\n"), &bytes.Buffer{})

	require.ErrorIs(t, err, pathway.ErrNoRemedialSet)
}

func TestParseChoice(t *testing.T) {
	cur, err := curriculum.Builtin("fractions")
	require.NoError(t, err)
	q := cur.Diagnostic.Questions[0]

	tests := []struct {
		in     string
		wantID string
		wantOK bool
	}{
		{"1", "A", true},
		{" 4 ", "D", true},
		{"c", "C", true},
		{"0", "", false},
		{"5", "", false},
		{"", "", false},
		{"E", "", false},
	}
	for _, tt := range tests {
		opt, ok := parseChoice(q, tt.in)
		if ok != tt.wantOK || opt.ID != tt.wantID {
			t.Errorf("parseChoice(%q) = (%q, %v), want (%q, %v)", tt.in, opt.ID, ok, tt.wantID, tt.wantOK)
		}
	}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand_Builtin(t *testing.T) {
	isolate(t)

	out, err := execute(t, "validate", "builtin:fractions")

	require.NoError(t, err)
	assert.Contains(t, out, "Chapter: Fractions (Grade 8) (fractions)")
	assert.Contains(t, out, "proper_fractions → simplification → addition_with_unlike_denominators")
	assert.Contains(t, out, "ok")
}

func TestValidateCommand_ReportsGaps(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "gap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(gapCurriculum), 0o644))

	out, err := execute(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "lonely (Lonely concept)")
}

func TestValidateCommand_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: bad\ndiagnostic:\n  questions: []\n"), 0o644))

	_, err := execute(t, "validate", path)

	require.ErrorIs(t, err, quiz.ErrEmptyQuestionSet)
}

func TestConceptListCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "concept", "list", "--curriculum", "builtin:fractions")

	require.NoError(t, err)
	assert.Contains(t, out, "division_using_reciprocal")
	assert.Contains(t, out, "5 concepts")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Fractions", truncate("Fractions", 40))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	// Multibyte labels are cut on rune boundaries.
	got := truncate("Brüche kürzen und erweitern mit Übungsaufgaben", 20)
	assert.Equal(t, "Brüche kürzen und...", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 20, utf8.RuneCountInString(got))
}

const gapCurriculum = `
id: gap
title: Gap
concepts:
  - id: lonely
    label: Lonely concept
diagnostic:
  title: Check
  questions:
    - id: D1
      prompt: "1 + 1 = ?"
      options:
        - {id: A, text: "2"}
        - {id: B, text: "3"}
      correct: A
concept_map:
  D1: lonely
`
