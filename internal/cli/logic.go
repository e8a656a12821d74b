package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/idelchi/fssummary/internal/logging"
	"github.com/idelchi/fssummary/internal/summary"
)

func logic(ctx context.Context, options Options, out io.Writer) (err error) {
	logger, err := logging.New(options.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	defer func() {
		if syncErr := logging.Sync(logger); syncErr != nil && err == nil {
			err = fmt.Errorf("syncing logger: %w", syncErr)
		}
	}()

	enableProgress := options.Output == "table" &&
		!options.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	sum := summary.New()

	for _, path := range options.Paths {
		if options.Output == "table" {
			fmt.Fprintf(out, "Scanning %s\n", path)
		}

		logger.Debug("scanning", zap.String("path", path))

		err := summary.Scan(ctx, sum, path, summary.ScanOptions{
			KeepGoing: options.KeepGoing,
			Logger:    logger,
			Progress:  progressHook,
		})

		// Clear the status line
		if enableProgress {
			fmt.Fprint(os.Stderr, "\r\033[2K\r")
		}

		if err != nil {
			return err
		}

		sum.Coarsen(summary.DefaultMaxEntries)

		if err := render(sum.Snapshot(), options.Output, out); err != nil {
			return err
		}
	}

	return nil
}

func render(report *summary.Report, output string, out io.Writer) error {
	switch output {
	case "json":
		return PrintJSON(report, out)
	case "table":
		return PrintTable(report, out)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
