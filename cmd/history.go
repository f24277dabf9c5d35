package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear a learner's chat transcript",
}

var historyListCmd = &cobra.Command{
	Use:   "list <user_id>",
	Short: "Print the saved transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.HistoryRepo().History(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages found.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Message)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear <user_id>",
	Short: "Delete the saved transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.HistoryRepo().ClearHistory(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
