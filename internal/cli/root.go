// Package cli implements the img2ascii command-line interface.
//
// Commands:
//   - convert: convert one image to a rendered character image
//   - batch: convert many images into an output directory
//   - video: reserved; reports that video is unsupported
//   - version: print build information
//
// All commands accept --verbose (-v) for debug logging. The logger is
// passed to commands through the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the build information shown by version and --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI with args, logging to stderr.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "img2ascii",
		Short:         "Render images as ASCII art images",
		Long:          `img2ascii converts an image into a grid of characters chosen by luminance and edge direction, then renders that grid back to an image with a monospace font.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(versionString() + "\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newVideoCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func versionString() string {
	return fmt.Sprintf("img2ascii %s\ncommit: %s\nbuilt: %s", version, commit, date)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}
