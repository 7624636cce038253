package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/config"
	"github.com/vango-dev/reactree/pkg/snapshot"
)

// newSink selects the S3 sink when a bucket is configured and the
// directory sink otherwise.
func newSink(cfg *config.Config) snapshot.Sink {
	if cfg.Snapshot.Bucket != "" {
		client := snapshot.NewS3Client(snapshot.S3Options{
			Region:    cfg.Snapshot.Region,
			Endpoint:  cfg.Snapshot.Endpoint,
			PathStyle: cfg.Snapshot.PathStyle,
		})
		return snapshot.NewS3Sink(client, cfg.Snapshot.Bucket)
	}
	if cfg.Snapshot.Dir != "" {
		return snapshot.NewDirSink(cfg.SnapshotPath())
	}
	return nil
}

func snapshotCmd(g *globals) *cobra.Command {
	var (
		name string
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export the rendered HTML and state",
		Long: `Mount the configured view, apply each --set and export the mount
element's HTML and the state.

Snapshots go to the S3 bucket in snapshot.bucket when set, otherwise
to snapshot.dir. Credentials for S3 come from the AWS_* environment.

Examples:
  reactree snapshot
  reactree snapshot --name after-click --set count=1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			p, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.app.Destroy()

			for _, a := range assignments {
				err := p.app.Dispatch(func(app *reactree.App) error {
					return app.Assign(a.path, a.value)
				})
				if err != nil {
					return err
				}
			}

			if name == "" {
				name = p.cfg.Name
			}
			exporter := snapshot.NewExporter(newSink(p.cfg),
				snapshot.WithPrefix(p.cfg.Snapshot.Prefix),
				snapshot.WithLogger(p.logger),
				snapshot.WithMetrics(p.metrics),
			)
			res, err := exporter.Export(cmd.Context(), p.app, name)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			success(w, "Snapshot %s", res.ID)
			info(w, "%s (%d bytes)", res.HTMLKey, res.HTMLBytes)
			info(w, "%s", res.StateKey)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Snapshot name (default: config name)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Assign path=value before exporting (repeatable)")

	return cmd
}
