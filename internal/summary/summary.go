package summary

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

const (
	// KB is the number of bytes in a kilobyte.
	KB = 1024
	// MB is the number of bytes in a megabyte.
	MB = 1024 * KB
	// GB is the number of bytes in a gigabyte.
	GB = 1024 * MB

	// DefaultMaxEntries is the bin budget applied to the size histograms before reporting.
	DefaultMaxEntries = 50
)

// IgnoreFilenames lists file names that are counted as ignored instead of being recorded.
//
//nolint:gochecknoglobals // Fixed ignore set
var IgnoreFilenames = []string{"Thumbs.db", ".DS_Store"}

// Outcome is the result of recording a single file.
type Outcome int

const (
	// Added means the file contributed to the totals and histograms.
	Added Outcome = iota
	// Ignored means the file name is in IgnoreFilenames.
	Ignored
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == Ignored {
		return "ignored"
	}

	return "added"
}

// Summary accumulates file statistics across one or more scanned roots.
// It is not safe for concurrent use.
type Summary struct {
	// Paths lists the roots scanned so far, in scan order.
	Paths []string
	// SizeCount counts files per megabyte bucket.
	SizeCount SizeCounts
	// SizeStorage sums storage in MB per megabyte bucket.
	SizeStorage SizeStorage
	// YearCount counts files per modification year.
	YearCount YearCounts
	// YearStorage sums storage in MB per modification year.
	YearStorage YearStorage
	// TotalBytes is the exact byte total of all recorded files.
	TotalBytes int64
	// TotalFiles is the number of recorded files.
	TotalFiles int64
	// TotalDirs is the number of directories visited.
	TotalDirs int64
	// TotalIgnored is the number of files skipped by name.
	TotalIgnored int64
	// TotalErrors is the number of entries skipped because of errors (keep-going mode only).
	TotalErrors int64
	// Location is the time zone used to derive year buckets.
	Location *time.Location
}

// New creates an empty Summary that buckets years in local time.
func New() *Summary {
	return &Summary{
		SizeCount:   make(SizeCounts),
		SizeStorage: make(SizeStorage),
		YearCount:   make(YearCounts),
		YearStorage: make(YearStorage),
		Location:    time.Local,
	}
}

// KilobytesCeil returns size rounded up to whole kilobytes.
func KilobytesCeil(size int64) int64 {
	return (size + KB - 1) / KB
}

// MegabytesCeil returns size rounded up to whole megabytes.
func MegabytesCeil(size int64) int64 {
	return (size + MB - 1) / MB
}

// IsIgnored reports whether name is one of IgnoreFilenames (exact, case-sensitive).
func IsIgnored(name string) bool {
	return slices.Contains(IgnoreFilenames, name)
}

// Record adds the file name in dir to the statistics, using reader to resolve its metadata.
// Ignored names only bump TotalIgnored. A reader failure is returned unchanged in kind
// and leaves the Summary untouched.
func (s *Summary) Record(dir, name string, reader MetadataReader) (Outcome, error) {
	if IsIgnored(name) {
		s.TotalIgnored++

		return Ignored, nil
	}

	path := filepath.Join(dir, name)

	rec, err := reader.Stat(path)
	if err != nil {
		return Added, fmt.Errorf("reading %q: %w", path, err)
	}

	s.add(rec)

	return Added, nil
}

// add accumulates a single file record.
//
// Storage is derived from the kilobyte-rounded size while the size bucket is
// rounded to megabytes directly from the byte count; the two never share an
// intermediate value.
func (s *Summary) add(rec FileRecord) {
	s.TotalFiles++
	s.TotalBytes += rec.Size

	storage := float64(KilobytesCeil(rec.Size)) / KB
	bucket := MegabytesCeil(rec.Size)
	year := s.year(rec.ModTime)

	s.SizeCount.Add(bucket, 1)
	s.SizeStorage.Add(bucket, storage)
	s.YearCount.Add(year, 1)
	s.YearStorage.Add(year, storage)
}

func (s *Summary) year(t time.Time) string {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format("2006")
}

// Coarsen rebins both size histograms to at most maxEntries bins.
// Year histograms keep full resolution.
func (s *Summary) Coarsen(maxEntries int) {
	Rebin(s.SizeCount, maxEntries)
	Rebin(s.SizeStorage, maxEntries)
}

// Report is a point-in-time copy of a Summary, with bins sorted by key.
type Report struct {
	// RunOn is when the snapshot was taken.
	RunOn time.Time `json:"run_on"`
	// Paths lists the roots scanned so far.
	Paths []string `json:"paths"`
	// Dirs is the number of directories visited.
	Dirs int64 `json:"dirs"`
	// Files is the number of recorded files.
	Files int64 `json:"files"`
	// Bytes is the exact byte total of recorded files.
	Bytes int64 `json:"bytes"`
	// Ignored is the number of files skipped by name.
	Ignored int64 `json:"ignored"`
	// Errors is the number of entries skipped because of errors.
	Errors int64 `json:"errors"`
	// IgnorePatterns lists the ignored file names.
	IgnorePatterns []string `json:"ignore_patterns"`
	// SizeCount is the file count per size bucket (MB).
	SizeCount []Entry[int64, int64] `json:"size_count"`
	// SizeStorage is the storage (MB) per size bucket (MB).
	SizeStorage []Entry[int64, float64] `json:"size_storage"`
	// YearCount is the file count per modification year.
	YearCount []Entry[string, int64] `json:"year_count"`
	// YearStorage is the storage (MB) per modification year.
	YearStorage []Entry[string, float64] `json:"year_storage"`
}

// Snapshot returns a copy of the current state. Later calls to Record do not affect it.
func (s *Summary) Snapshot() *Report {
	return &Report{
		RunOn:          time.Now(),
		Paths:          slices.Clone(s.Paths),
		Dirs:           s.TotalDirs,
		Files:          s.TotalFiles,
		Bytes:          s.TotalBytes,
		Ignored:        s.TotalIgnored,
		Errors:         s.TotalErrors,
		IgnorePatterns: slices.Clone(IgnoreFilenames),
		SizeCount:      s.SizeCount.Entries(),
		SizeStorage:    s.SizeStorage.Entries(),
		YearCount:      s.YearCount.Entries(),
		YearStorage:    s.YearStorage.Entries(),
	}
}
