package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/ui/report"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank challenges for the learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		explain, _ := cmd.Flags().GetBool("explain")
		user, err := userFlag(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rank := a.Coach.Recommend
		if explain {
			rank = a.Coach.Explain
		}
		recs, err := rank(cmd.Context(), user, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Recommendations(recs, explain))
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntP("limit", "n", 5, "Number of challenges to show (0 for all)")
	recommendCmd.Flags().Bool("explain", false, "Show the points each rule contributed")
}
