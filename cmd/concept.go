package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Browse the curriculum's concepts",
}

var conceptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List concepts in review priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cur, err := cfg.LoadCurriculum()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-3s  %-36s  %-40s  %-6s  %s\n", "#", "ID", "Label", "Review", "Prerequisites")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for i, c := range cur.Graph().All() {
			label := truncate(c.DisplayName(), 40)
			review := "-"
			if set, ok := cur.RemedialFor(c.ID); ok {
				review = fmt.Sprintf("%d q", len(set.Questions))
			}
			fmt.Fprintf(out, "%-3d  %-36s  %-40s  %-6s  %s\n",
				i+1, c.ID, label, review, strings.Join(c.Prerequisites, ", "))
		}

		fmt.Fprintf(out, "\n%d concepts\n", cur.Graph().Len())
		return nil
	},
}

func init() {
	conceptCmd.AddCommand(conceptListCmd)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
