package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactree/pkg/preview"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Mount the configured view and serve it with live updates.

Browsers connected to the page receive every patch. State can be
written from the page, over the websocket, or with HTTP:

  curl -X PUT localhost:4000/state/count -d 5

Examples:
  reactree serve
  reactree serve --port=8080 --host=0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if !cmd.Flags().Changed("port") {
				port = -1
			}
			return runServe(ctx, cmd, g, host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on, 0 for any free port (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, g *globals, host string, port int) error {
	p, err := g.open(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer p.app.Destroy()

	if port >= 0 {
		p.cfg.Preview.Port = port
	}
	if host != "" {
		p.cfg.Preview.Host = host
	}

	srv := preview.New(p.app,
		preview.WithLogger(p.logger),
		preview.WithMetrics(p.metrics),
		preview.WithTitle(p.cfg.Name),
	)

	w := cmd.OutOrStdout()
	printBanner(w)
	success(w, "Serving %s on %s", p.cfg.Name, p.cfg.PreviewURL())
	if p.metrics != nil {
		info(w, "Metrics at %s/metrics", p.cfg.PreviewURL())
	}
	info(w, "Mounted #%s with %d state keys", p.cfg.El, p.app.State().Len())

	return srv.Run(ctx, p.cfg.PreviewAddress())
}
