package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/api"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the learner, for local API testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := userFlag(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
			cfg.Server.TokenTTL = ttl
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		tok, err := api.IssueToken([]byte(cfg.Server.JWTSecret), user, cfg.Server.TokenTTL, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (overrides server.token_ttl)")
}
