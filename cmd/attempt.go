package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/ui/report"
	"github.com/abhisek/lingoloop/internal/ui/theme"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt <challenge-id>",
	Short: "Record a completed challenge and show the next recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetFloat64("score")
		passed, _ := cmd.Flags().GetBool("passed")
		xp, _ := cmd.Flags().GetInt("xp")
		limit, _ := cmd.Flags().GetInt("limit")
		user, err := userFlag(cmd)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("passed") {
			passed = score >= 60
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Coach.CompleteAttempt(cmd.Context(), user, coach.AttemptInput{
			ChallengeID: args[0],
			Score:       score,
			Passed:      passed,
			XPEarned:    xp,
		}, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s  %s %s  %s %s\n\n",
			theme.Label.Render("Recorded"), theme.Highlight.Render(args[0]),
			theme.Label.Render("level"), theme.Highlight.Render(string(res.Snapshot.EffectiveLevel)),
			theme.Label.Render("trend"), report.Trend(res.Snapshot.RecentTrend))
		fmt.Fprintln(out, report.Recommendations(res.Recommendations, false))
		return nil
	},
}

func init() {
	attemptCmd.Flags().Float64P("score", "s", 0, "Score from 0 to 100")
	attemptCmd.Flags().Bool("passed", false, "Whether the attempt passed (default: score >= 60)")
	attemptCmd.Flags().Int("xp", 0, "XP earned")
	attemptCmd.Flags().IntP("limit", "n", 5, "Number of follow-up recommendations")
}
