package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cubahno/schematest/internal/api"
	"github.com/cubahno/schematest/internal/catalog"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled schemas, validation and samples over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Server.Watch = watch
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := catalog.New(a.cfg, a.logger)
			if err := c.Load(); err != nil {
				if !a.cfg.Server.Watch {
					return err
				}
				a.logger.Error("Initial load failed, waiting for changes", "error", err)
			}

			if a.cfg.Server.Watch {
				go func() {
					if err := c.Watch(ctx); err != nil {
						a.logger.Error("File watcher stopped", "error", err)
					}
				}()
			}

			return api.NewServer(c, a.logger).Run(ctx, a.cfg.Server.Port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload definitions when files change")
	return cmd
}
