package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner performance",
	Long:  "Reset clears the learner's performance snapshot. The attempt history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		user, err := userFlag(cmd)
		if err != nil {
			return err
		}
		if !yes {
			return fmt.Errorf("refusing to reset %q without --yes", user)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.Coach.Reset(cmd.Context(), user)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s (level %s).\n", user, snap.EffectiveLevel)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
}
