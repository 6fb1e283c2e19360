package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoloop/internal/api"
	"github.com/abhisek/lingoloop/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg, true)
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := app.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.Log.Mode == "production" || cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := api.New(a.Coach, api.Config{
			Addr:        cfg.Server.Addr,
			JWTSecret:   []byte(cfg.Server.JWTSecret),
			CORSOrigins: cfg.Server.CORSOrigins,
		}, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
