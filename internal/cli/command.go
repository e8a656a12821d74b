package cli

import (
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options configures a run of the CLI.
type Options struct {
	// Paths are the roots to scan, in order.
	Paths []string
	// Output represents output format (table or json).
	Output string
	// KeepGoing skips unreadable entries instead of aborting.
	KeepGoing bool
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options Options

	allowedOutputs := []string{"table", "json"}

	cmd := &cobra.Command{
		Use:   "fs-summary [flags] path [path...]",
		Short: "Summarize file sizes and ages below one or more directories",
		Long: heredoc.Doc(`
			fs-summary scans directory trees and reports how many files there are
			and how much storage they use, bucketed by file size (MB, rounded up)
			and by year of last modification.

			Each path is scanned in order. After each path a cumulative report is
			printed, covering every path scanned so far.

			The file names 'Thumbs.db' and '.DS_Store' are always ignored.

			By default an unreadable file or directory aborts the run. Use
			--keep-going to log and count such entries instead.
		`),
		Version:       c.version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			options.Paths = args

			return logic(cmd.Context(), options, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	flags.BoolVar(&options.KeepGoing, "keep-going", false, "Log and count unreadable entries instead of aborting")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")

	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}
