package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/curriculum"
	"github.com/abhisek/pathwise/internal/logger"
	"github.com/abhisek/pathwise/internal/pathway"
	"github.com/abhisek/pathwise/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run a learning journey as plain text (no TUI)",
	Long: `Walk through the diagnostic, concept reviews and results on stdin/stdout.

Answer with the option number or its letter. Useful for checking a new
curriculum file before handing it to learners.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := logger.ForConsole(cfg.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		cur, err := cfg.LoadCurriculum()
		if err != nil {
			return fmt.Errorf("load curriculum: %w", err)
		}

		j, err := pathway.New(cur,
			pathway.WithLogger(log),
			pathway.WithExplanations(cfg.Explanations),
			pathway.WithTransitionDelay(cfg.TransitionDelay))
		if err != nil {
			return err
		}
		return runPreview(j, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var errInputClosed = errors.New("input closed")

// runPreview drives j to its results screen from line-based input.
func runPreview(j *pathway.Journey, in io.Reader, out io.Writer) error {
	p := &previewer{j: j, cur: j.Curriculum(), in: bufio.NewScanner(in), out: out}

	if err := j.Start(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n%s\n\n", p.cur.Title, strings.Repeat("═", len(p.cur.Title)))

	for {
		if err := j.Err(); err != nil {
			return fmt.Errorf("journey halted: %w", err)
		}
		st := j.State()
		switch st.Stage {
		case pathway.StageDiagnostic, pathway.StageConceptReview:
			if err := p.question(st); err != nil {
				return err
			}
		case pathway.StageTransition:
			if err := p.transition(st); err != nil {
				return err
			}
		case pathway.StageResults:
			p.results(st)
			return nil
		}
	}
}

type previewer struct {
	j   *pathway.Journey
	cur *curriculum.Curriculum
	in  *bufio.Scanner
	out io.Writer
}

func (p *previewer) question(st pathway.State) error {
	a, ok := p.j.Attempt()
	if !ok {
		return pathway.ErrNoActiveAttempt
	}

	set := p.cur.Diagnostic
	if st.Stage == pathway.StageConceptReview {
		set = st.Remedial
	}
	if a.Cursor() == 0 {
		fmt.Fprintf(p.out, "── %s ──\n", set.Title)
		if set.Description != "" {
			fmt.Fprintln(p.out, set.Description)
		}
		fmt.Fprintln(p.out)
	}

	q := a.Current()
	fmt.Fprintf(p.out, "Question %d/%d: %s\n", a.Cursor()+1, a.Len(), q.Prompt)
	for i, o := range q.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Text)
	}

	var opt quiz.Option
	for {
		fmt.Fprint(p.out, "Your answer: ")
		if !p.in.Scan() {
			fmt.Fprintln(p.out)
			return errInputClosed
		}
		if opt, ok = parseChoice(q, p.in.Text()); ok {
			break
		}
		fmt.Fprintf(p.out, "Pick 1-%d.\n", len(q.Options))
	}
	if err := p.j.SelectAnswer(q.ID, opt.ID); err != nil {
		return err
	}
	if err := p.j.Advance(); err != nil {
		return err
	}

	if next, ok := p.j.Attempt(); ok && next.Phase() == quiz.PhaseShowingExplanation {
		correct, _ := q.CorrectOption()
		fmt.Fprintf(p.out, "✗ Not quite. Correct answer: %s\n%s\n\n", correct.Text, q.ExplanationText())
		return p.j.Advance()
	}
	if q.IsCorrect(opt.ID) {
		fmt.Fprint(p.out, "✓ Correct!\n\n")
	} else {
		fmt.Fprint(p.out, "✗ Not quite.\n\n")
	}
	return nil
}

func (p *previewer) transition(st pathway.State) error {
	sum := pathway.Summarize(p.cur, st)
	fmt.Fprintf(p.out, "Diagnostic score: %d%%\n", sum.DiagnosticScore)
	printList(p.out, "You understand", sum.Understands)
	printList(p.out, "Needs support", sum.NeedsSupport)
	printList(p.out, "Your learning path", sum.LearningPath)

	fmt.Fprint(p.out, "Press Enter to continue...")
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return errInputClosed
	}
	fmt.Fprintln(p.out)
	if err := p.j.Elapse(); err != nil && !errors.Is(err, pathway.ErrUnexpectedEvent) {
		return err
	}
	return nil
}

func (p *previewer) results(st pathway.State) {
	sum := pathway.Summarize(p.cur, st)
	fmt.Fprintln(p.out, sum.Headline)
	fmt.Fprintln(p.out)
	for _, a := range sum.Attempts {
		mark := "✓"
		if !a.Passed {
			mark = "✗"
		}
		fmt.Fprintf(p.out, "  %s %-60s %3d%%\n", mark, a.Title, a.Score)
	}
	fmt.Fprintln(p.out)
	printList(p.out, "Mastered", sum.Mastered)
	printList(p.out, "Keep practicing", sum.NeedsPractice)
	printList(p.out, "Next steps", sum.NextSteps)
}

func printList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(out, "  • %s\n", it)
	}
	fmt.Fprintln(out)
}

// parseChoice accepts a 1-based option number or an option ID.
func parseChoice(q quiz.Question, raw string) (quiz.Option, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return quiz.Option{}, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > len(q.Options) {
			return quiz.Option{}, false
		}
		return q.Options[n-1], true
	}
	for _, o := range q.Options {
		if strings.EqualFold(o.ID, raw) {
			return o, true
		}
	}
	return quiz.Option{}, false
}
