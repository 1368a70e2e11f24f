package cmd

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/api"
	"github.com/hunter-system/hunter/internal/progression"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := api.NewMetrics()
			e, err := openEnv(cmd, withServiceOptions(progression.WithRecorder(metrics)))
			if err != nil {
				return err
			}
			defer e.Close()

			gin.SetMode(e.cfg.Server.Mode)
			router := api.NewRouter(api.Deps{
				Service: e.svc,
				Briefer: e.briefer(cmd),
				Metrics: metrics,
				Ping:    e.store.Ping,
				Now:     e.now,
				Logger:  e.log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, e.cfg.Server.Addr, router, e.log)
		},
	}
	c.Flags().String("addr", "", "Listen address (default :8080)")
	return c
}
