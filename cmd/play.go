package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/app"
	"github.com/abhisek/pathwise/internal/logger"
	"github.com/abhisek/pathwise/internal/screens/journey"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive learning journey (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp loads configuration and the curriculum, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := logger.ForTUI(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()

	cur, err := cfg.LoadCurriculum()
	if err != nil {
		return fmt.Errorf("load curriculum: %w", err)
	}
	log.Info("starting",
		zap.String("curriculum", cur.ID),
		zap.String("config", cfg.File),
		zap.Int("diagnostic_pass", cur.Thresholds.DiagnosticPass),
		zap.Int("remediation", cur.Thresholds.Remediation))

	return app.Run(app.Options{
		Curriculum: cur,
		Logger:     log,
		Journey: journey.Options{
			Explanations:    cfg.Explanations,
			TransitionDelay: cfg.TransitionDelay,
			Logger:          log,
		},
	})
}
