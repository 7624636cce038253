// Command reactree renders, previews and snapshots a reactree App described
// by a reactree.json or reactree.yaml file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┬┐┬─┐┌─┐┌─┐
  ├┬┘├┤ ├─┤│   │ ├┬┘├┤ ├┤
  ┴└─└─┘┴ ┴└─┘ ┴ ┴└─└─┘└─┘
`

// globals holds the persistent flags.
type globals struct {
	config   string
	dir      string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "reactree",
		Short: "Reactive state bound to a live element tree",
		Long: `reactree mounts a declarative view onto an element tree and keeps
it in sync with reactive state.

Writes to the state re-run the view and patch the tree in place.
The tree can be printed, served with live updates, or exported
to a directory or an S3 bucket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.config, "config", "c", "", "Config file (default: reactree.json or reactree.yaml in --dir)")
	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		initCmd(g),
		renderCmd(g),
		serveCmd(g),
		snapshotCmd(g),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
