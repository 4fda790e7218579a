package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/curriculum"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a curriculum file and report concepts without a review set",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) == 1 {
			ref = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ref = cfg.Curriculum
		}

		cur, err := curriculum.Resolve(ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", cur.Title, cur.ID)
		fmt.Fprintf(out, "  %d concepts, %d questions\n", cur.Graph().Len(), cur.QuestionCount())
		fmt.Fprintf(out, "  diagnostic pass %d%%, review mastery %d%%\n",
			cur.Thresholds.DiagnosticPass, cur.Thresholds.Remediation)
		fmt.Fprintf(out, "  review order: %s\n", strings.Join(cur.Graph().PriorityOrder(), " → "))

		if gaps := cur.Gaps(); len(gaps) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "warning: diagnostic concepts without a concept review set:")
			for _, id := range gaps {
				fmt.Fprintf(out, "  - %s (%s)\n", id, cur.Label(id))
			}
			fmt.Fprintln(out, "a learner who misses one of these will stop at the transition.")
			return nil
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}
