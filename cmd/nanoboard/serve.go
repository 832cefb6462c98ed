package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/nanoboard/internal/httpapi"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the boards over HTTP",
		Long: `Serve the board operations as JSON under /api, with Prometheus
metrics at /metrics. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.Store()
			if err != nil {
				return err
			}
			c.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv := httpapi.New(s,
				httpapi.WithLogger(c.logger),
				httpapi.WithOrigins(c.cfg.HTTP.Origins),
				httpapi.WithGatherer(c.registry),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, c.cfg.HTTP.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :3001)")
	cmd.Flags().StringSlice("origins", nil, "allowed CORS origins (default *)")
	return cmd
}
