package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/errors"
)

// assignment is one parsed --set flag.
type assignment struct {
	path  string
	value any
}

// parseAssignment splits "path=value". The value is parsed as YAML, so
// "1" is an int, "true" a bool and "{a: 1}" a map. An empty value is nil.
func parseAssignment(s string) (assignment, error) {
	path, raw, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return assignment{}, errors.New("X001").WithDetail(s)
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return assignment{}, errors.New("X001").WithDetail(s).Wrap(err)
	}
	return assignment{path: path, value: v}, nil
}

func parseAssignments(in []string) ([]assignment, error) {
	out := make([]assignment, 0, len(in))
	for _, s := range in {
		a, err := parseAssignment(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func renderCmd(g *globals) *cobra.Command {
	var (
		sets      []string
		mutations bool
		state     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Mount the view and print its HTML",
		Long: `Mount the configured view, apply each --set in order and print the
resulting HTML of the mount element.

Each --set writes through the reactive state, so the printed tree is
the result of incremental patches, not a fresh render.

Examples:
  reactree render
  reactree render --set count=1 --set count=2
  reactree render --set user.name=ada --mutations`,
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

			p.doc.Drain()
			for _, a := range assignments {
				err := p.app.Dispatch(func(app *reactree.App) error {
					return app.Assign(a.path, a.value)
				})
				if err != nil {
					return err
				}
				if err := p.view.Err(); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, p.app.HTML())

			if mutations {
				enc := json.NewEncoder(w)
				for _, m := range p.doc.Drain() {
					if err := enc.Encode(m); err != nil {
						return err
					}
				}
			}
			if state {
				out, err := yaml.Marshal(p.app.State().Snapshot())
				if err != nil {
					return err
				}
				fmt.Fprint(w, string(out))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Assign path=value before printing (repeatable)")
	cmd.Flags().BoolVar(&mutations, "mutations", false, "Print the host mutations caused by --set as JSON lines")
	cmd.Flags().BoolVar(&state, "state", false, "Print the final state as YAML")

	return cmd
}
