package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Scenarios posted to /v1/scenarios are kept in the configured store ([store] in
the config file). The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: [server] addr, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	scenarios, s, err := c.openScenarios(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := server.New(scenarios,
		server.WithLogger(loggerFromContext(ctx)),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)
	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printDetail("store: %s", cfg.Store.Backend)
	return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
}
