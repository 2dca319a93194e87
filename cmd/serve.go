package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/httpapi"
	"github.com/abhisek/aitutor/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := httpapi.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		log := logger.FromEnv("dev")
		defer log.Sync()

		ctx := cmd.Context()
		svc, err := newService(ctx, s, log)
		if err != nil {
			return err
		}
		return httpapi.Serve(ctx, cfg, httpapi.NewHandler(svc, log), log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides AITUTOR_HTTP_ADDR)")
}
