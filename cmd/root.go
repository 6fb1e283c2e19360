package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/app"
	"github.com/abhisek/lingoloop/internal/config"
	"github.com/abhisek/lingoloop/internal/logger"
	"github.com/abhisek/lingoloop/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingoloop",
	Short: "Adaptive challenge coach for language learners",
	Long: "Lingoloop tracks how a learner performs across challenge types, topics and levels,\n" +
		"adjusts their effective level and recommends what to practice next.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/lingoloop/config.toml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGOLOOP_DB env var)")
	rootCmd.PersistentFlags().StringP("user", "u", defaultUser(), "Learner ID (defaults to LINGOLOOP_USER or \"local\")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

func defaultUser() string {
	if u := os.Getenv("LINGOLOOP_USER"); u != "" {
		return u
	}
	return "local"
}

// loadConfig reads --config and applies --db.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return config.Config{}, fmt.Errorf("create database dir: %w", err)
		}
		cfg.Storage.DBPath = p
	}
	return cfg, nil
}

// newLogger returns a real logger when forced or --verbose is set.
func newLogger(cmd *cobra.Command, cfg config.Config, force bool) (*logger.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !force && !verbose {
		return logger.Nop(), nil
	}
	return logger.New(cfg.Log.Mode)
}

// openApp loads configuration and wires the application.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cmd, cfg, false)
	if err != nil {
		return nil, err
	}
	return app.Open(cmd.Context(), cfg, log)
}

func userFlag(cmd *cobra.Command) (string, error) {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		return "", fmt.Errorf("--user must not be empty")
	}
	return u, nil
}
