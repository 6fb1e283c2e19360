package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/profile"
	"github.com/abhisek/lingoloop/internal/ui/report"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the learner profile",
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

		p, err := a.Coach.Profile(cmd.Context(), user)
		if errors.Is(err, profile.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No profile for %s. Create one with `lingoloop profile set`.\n", user)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Profile(user, p))
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the learner profile",
	Long:  "Set updates only the fields given as flags; a new profile needs --age, --level and two --interest values.",
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
		p, err := a.Coach.Profile(ctx, user)
		if errors.Is(err, profile.ErrNotFound) {
			p = &profile.Profile{}
		} else if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			p.DisplayName, _ = flags.GetString("name")
		}
		if flags.Changed("age") {
			age, _ := flags.GetString("age")
			p.AgeGroup = challenge.AgeGroup(age)
		}
		if flags.Changed("level") {
			lvl, _ := flags.GetString("level")
			p.Level = challenge.Level(lvl)
		}
		if flags.Changed("interest") {
			p.Interests, _ = flags.GetStringSlice("interest")
		}
		if flags.Changed("native") {
			p.NativeLanguage, _ = flags.GetString("native")
		}
		if flags.Changed("target") {
			p.TargetLanguage, _ = flags.GetString("target")
		}

		if err := a.Coach.SaveProfile(ctx, user, p); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Profile(user, p))
		return nil
	},
}

func init() {
	profileSetCmd.Flags().String("name", "", "Display name")
	profileSetCmd.Flags().String("age", "", "Age group: child, teen or adult")
	profileSetCmd.Flags().String("level", "", "Declared level: beginner, intermediate or advanced")
	profileSetCmd.Flags().StringSlice("interest", nil, "Interest topic (repeatable or comma separated)")
	profileSetCmd.Flags().String("native", "", "Native language")
	profileSetCmd.Flags().String("target", "", "Language being learned")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
