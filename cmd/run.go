package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/screen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	learnerID, _ := cmd.Flags().GetString("learner")
	if learnerID == "" {
		learnerID, err = localLearnerID(d.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("resolve learner: %w", err)
		}
	}

	return app.Run(screen.Session{
		Tutor:     d.tutor,
		History:   d.store.HistoryRepo(),
		LearnerID: learnerID,
		Language:  d.cfg.Language,
	})
}
