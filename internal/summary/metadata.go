package summary

import (
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	// ErrMetadataUnavailable is returned when a file's size or modification time cannot be read.
	ErrMetadataUnavailable = errors.New("metadata unavailable")
	// ErrInaccessibleDirectory is returned when a directory cannot be listed.
	ErrInaccessibleDirectory = errors.New("inaccessible directory")
)

// FileRecord is the metadata of a single file, consumed immediately by Record.
type FileRecord struct {
	// Size is the file size in bytes.
	Size int64
	// ModTime is the last modification time.
	ModTime time.Time
}

// MetadataReader resolves the size and modification time of a path.
type MetadataReader interface {
	Stat(path string) (FileRecord, error)
}

// OSReader reads metadata from the local filesystem, following symlinks.
type OSReader struct{}

// Stat implements MetadataReader.
func (OSReader) Stat(path string) (FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}

	return FileRecord{Size: info.Size(), ModTime: info.ModTime()}, nil
}
