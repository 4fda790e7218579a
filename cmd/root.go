package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/pathwise/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pathwise",
	Short: "Adaptive quiz pathways in the terminal",
	Long: `Pathwise runs a diagnostic quiz over a chapter, works out which concepts
need reinforcement and walks the learner through one focused review per
concept before summarizing what was mastered.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ./pathwise.yaml or the user config dir)")
	pf.String("curriculum", "", "Curriculum YAML file or builtin:<name> (overrides PATHWISE_CURRICULUM)")
	pf.Bool("explanations", true, "Show an explanation after each incorrect answer")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(conceptCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration with flags taking priority over the
// environment, then the config file, then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	bindFlag(v, cmd, config.KeyCurriculum, "curriculum")
	bindFlag(v, cmd, config.KeyExplanations, "explanations")
	bindFlag(v, cmd, config.KeyLogLevel, "log-level")

	file, _ := cmd.Flags().GetString("config")
	return config.Load(v, file)
}

// bindFlag binds a flag only when the user set it, so an empty flag
// default never shadows the config file.
func bindFlag(v *viper.Viper, cmd *cobra.Command, key, name string) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	_ = v.BindPFlag(key, f)
}
