package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/ui/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := userFlag(cmd)
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		ins, err := a.Coach.Insights(ctx, user)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, report.Snapshot(a.Coach.Snapshot(ctx, user)))
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.Insights(ins))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, err := userFlag(cmd)
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		events, err := a.Coach.History(cmd.Context(), user, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.History(events))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
