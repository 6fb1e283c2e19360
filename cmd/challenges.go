package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/contentgen"
	"github.com/abhisek/lingoloop/internal/ui/report"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Browse and author challenge content",
}

var challengesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List challenges in the pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, _ := cmd.Flags().GetString("type")
		topic, _ := cmd.Flags().GetString("topic")
		level, _ := cmd.Flags().GetString("level")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var out []challenge.Challenge
		for _, c := range a.Pool.All() {
			if (typ == "" || string(c.Type) == typ) &&
				(topic == "" || c.Topic == topic) &&
				(level == "" || string(c.Level) == level) {
				out = append(out, c)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Challenges(out))
		return nil
	},
}

var challengesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Author new challenges with the configured LLM and save them as a pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		typ, _ := flags.GetString("type")
		topic, _ := flags.GetString("topic")
		level, _ := flags.GetString("level")
		age, _ := flags.GetString("age")
		count, _ := flags.GetInt("count")
		outPath, _ := flags.GetString("out")
		dryRun, _ := flags.GetBool("dry-run")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		gen, err := a.Generator(cmd.Context())
		if err != nil {
			return err
		}

		var avoid []string
		for _, c := range a.Pool.All() {
			if c.Topic == topic && string(c.Type) == typ {
				avoid = append(avoid, c.Title)
			}
		}

		generated, err := gen.Generate(cmd.Context(), contentgen.Input{
			Type:     challenge.Type(typ),
			Topic:    topic,
			Level:    challenge.Level(level),
			AgeGroup: challenge.AgeGroup(age),
			Count:    count,
			Avoid:    avoid,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, report.Challenges(generated))
		if dryRun {
			return nil
		}

		if outPath == "" {
			name := fmt.Sprintf("generated-%s.json", time.Now().UTC().Format("20060102-150405"))
			outPath = filepath.Join(a.Config.Content.PackDir, name)
		}
		pack := &challenge.Pack{
			Version:    challenge.PackMajor + ".0.0",
			Name:       fmt.Sprintf("%s %s %s", topic, typ, level),
			Challenges: generated,
		}
		if err := challenge.SavePack(outPath, pack); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nSaved %d challenges to %s\n", len(generated), outPath)
		return nil
	},
}

func init() {
	challengesListCmd.Flags().String("type", "", "Filter by type")
	challengesListCmd.Flags().String("topic", "", "Filter by topic")
	challengesListCmd.Flags().String("level", "", "Filter by level")

	f := challengesGenerateCmd.Flags()
	f.String("type", string(challenge.TypeMultipleChoice), "Challenge type")
	f.String("topic", "", "Topic (required)")
	f.String("level", string(challenge.LevelBeginner), "Level")
	f.String("age", "", "Age group (default all)")
	f.IntP("count", "n", 3, "Number of challenges")
	f.StringP("out", "o", "", "Pack file to write (default a new file in the pack dir)")
	f.Bool("dry-run", false, "Print without saving")
	_ = challengesGenerateCmd.MarkFlagRequired("topic")

	challengesCmd.AddCommand(challengesListCmd)
	challengesCmd.AddCommand(challengesGenerateCmd)
}
