package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send one message to the tutor and print the reply",
	Example: `  lingua ask "grammar: Ich habe gestern ins Kino gegangen"
  lingua ask --learner alice "translate to english: Wo ist der Bahnhof?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, logger)
		if err != nil {
			return err
		}
		defer d.Close()

		learnerID, _ := cmd.Flags().GetString("learner")
		showMeta, _ := cmd.Flags().GetBool("meta")
		message := strings.Join(args, " ")

		turn, err := exchange(cmd.Context(), d, learnerID, message)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), turn.Reply)
		if showMeta {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n[handler=%s level=%s]\n", turn.Handler, turn.Level)
		}
		return nil
	},
}

// exchange runs one turn and records both sides in the chat history. Blank
// messages are rejected before anything is written.
func exchange(ctx context.Context, d *deps, learnerID, message string) (tutor.Turn, error) {
	if strings.TrimSpace(message) == "" {
		return tutor.Turn{}, tutor.ErrEmptyMessage
	}

	history := d.store.HistoryRepo()
	if err := history.SaveMessage(ctx, learnerID, "You: "+message); err != nil {
		return tutor.Turn{}, fmt.Errorf("save message: %w", err)
	}
	turn, err := d.tutor.ProcessTurn(ctx, learnerID, message)
	if err != nil {
		return tutor.Turn{}, err
	}
	if err := history.SaveMessage(ctx, learnerID, "Teacher: "+turn.Reply); err != nil {
		return tutor.Turn{}, fmt.Errorf("save reply: %w", err)
	}
	return turn, nil
}

func init() {
	askCmd.Flags().StringP("learner", "l", progress.DefaultLearner, "Learner ID")
	askCmd.Flags().Bool("meta", false, "Print the handler and level after the reply")
}
