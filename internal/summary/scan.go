package summary

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// ScanOptions configures a single Scan.
type ScanOptions struct {
	// Reader resolves file metadata. Defaults to OSReader.
	Reader MetadataReader
	// KeepGoing logs and counts unreadable entries instead of aborting.
	KeepGoing bool
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// Progress, if set, is called with the running file and byte totals.
	Progress func(files, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Scan walks root and records every file below it into s.
// Every visited directory, root included, counts towards TotalDirs.
// Symlinks to directories are neither followed nor counted; other symlinks
// are recorded with the metadata of their target.
//
// The first unreadable directory or file aborts the walk with an error wrapping
// ErrInaccessibleDirectory or ErrMetadataUnavailable, unless opt.KeepGoing is set.
// Statistics recorded before the failure stay in s.
//
//nolint:funlen // Walk callback kept in one place
func Scan(ctx context.Context, s *Summary, root string, opt ScanOptions) error {
	if opt.Reader == nil {
		opt.Reader = OSReader{}
	}

	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}

	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = DefaultProgressInterval
	}

	log := opt.Logger.With(zap.String("root", root))

	s.Paths = append(s.Paths, root)

	// validate path exists and is a directory
	if info, err := os.Stat(root); err != nil {
		return fmt.Errorf("%w: accessing path %q: %w", ErrInaccessibleDirectory, root, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%w: path %q is not a directory", ErrInaccessibleDirectory, root)
	}

	var (
		mu           sync.Mutex // fastwalk requires a concurrency-safe callback
		lastProgress time.Time
	)

	start := time.Now()

	// One worker keeps callbacks in walk order.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			err = fmt.Errorf("%w: %q: %w", ErrInaccessibleDirectory, path, err)
			if !opt.KeepGoing {
				return err
			}

			log.Warn("skipping directory", zap.Error(err))
			s.TotalErrors++

			// fastwalk already reported this directory before failing to list it.
			if d != nil && d.IsDir() && s.TotalDirs > 0 {
				s.TotalDirs--
			}

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			log.Debug("entering directory", zap.String("dir", path))
			s.TotalDirs++

			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				log.Debug("skipping directory symlink", zap.String("path", path))

				return nil
			}
		}

		outcome, err := s.Record(filepath.Dir(path), d.Name(), opt.Reader)
		if err != nil {
			if !opt.KeepGoing {
				return err
			}

			log.Warn("skipping file", zap.Error(err))
			s.TotalErrors++

			return nil
		}

		if outcome == Ignored {
			log.Debug("ignoring file", zap.String("path", path))
		}

		if opt.Progress != nil && time.Since(lastProgress) >= opt.ProgressInterval {
			lastProgress = time.Now()
			opt.Progress(s.TotalFiles, s.TotalBytes)
		}

		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	log.Debug("scan complete",
		zap.Int64("files", s.TotalFiles),
		zap.String("size", humanize.IBytes(uint64(s.TotalBytes))), //nolint:gosec // Bytes is always positive
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}
