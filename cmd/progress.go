package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset a learner's grammar progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show <user_id>",
	Short: "Print accuracy and level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		st := d.tutor.Progress().Stats(cmd.Context(), args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Learner:   %s\n", args[0])
		fmt.Fprintf(out, "Correct:   %d / %d\n", st.Correct, st.Total)
		fmt.Fprintf(out, "Accuracy:  %.1f%%\n", st.Accuracy*100)
		fmt.Fprintf(out, "Level:     %s\n", st.Level)
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset <user_id>",
	Short: "Forget a learner's progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.tutor.Progress().Reset(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset")
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}
