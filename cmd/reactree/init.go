package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactree/internal/config"
	"github.com/vango-dev/reactree/internal/errors"
)

func initCmd(g *globals) *cobra.Command {
	var (
		useYAML bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample config",
		Long: `Write the counter example as reactree.json (or reactree.yaml
with --yaml) into the project directory.

Examples:
  reactree init
  reactree init --yaml -C ./demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.ConfigFileName
			if useYAML {
				name = config.YAMLFileName
			}
			path := filepath.Join(g.dir, name)
			if g.config != "" {
				path = g.config
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("X002").
					WithDetail(path).
					WithSuggestion("Pass --force to overwrite it")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.New("C001").Wrap(err)
			}

			if err := config.New().SaveTo(path); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			success(w, "Created %s", path)
			info(w, "Render it with: reactree render --set count=1")
			return nil
		},
	}

	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Write reactree.yaml instead of reactree.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}
