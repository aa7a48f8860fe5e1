package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFile is a device configuration file on disk (usually config.json on the SD card).
type ConfigFile struct {
	Path string
}

// Abs returns the absolute, cleaned path (used as the history key).
func (f ConfigFile) Abs() string {
	p := strings.TrimSpace(f.Path)
	if p == "" {
		p = DefaultConfigFileName
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func (f ConfigFile) Exists() bool {
	st, err := os.Stat(f.Abs())
	return err == nil && !st.IsDir()
}

// Read returns the file contents. A missing file reads as (nil, nil) so callers can start
// from an empty configuration.
func (f ConfigFile) Read() ([]byte, error) {
	b, err := os.ReadFile(f.Abs())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return b, nil
}

// Write replaces the file atomically. The previous contents, if any, are kept next to it
// as <name>.bak.
func (f ConfigFile) Write(b []byte) error {
	path := f.Abs()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Best-effort: keep a copy of the previous file. Ignore errors to avoid blocking saves.
	if st, err := os.Stat(path); err == nil && st.Size() > 0 {
		_ = CopyFile(path, path+".bak")
	}

	// Unique temp name + rename so a crash never leaves a half-written config on the card.
	if err := atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// Save writes b to the file and, when j is non-nil, records it as a new revision.
// A history failure does not undo the write; it is returned wrapped so callers can
// report it separately.
func (f ConfigFile) Save(ctx context.Context, j *Journal, b []byte, events int) error {
	if err := f.Write(b); err != nil {
		return err
	}
	if j == nil {
		return nil
	}
	if _, _, err := j.Record(ctx, f.Abs(), b, events); err != nil {
		return &HistoryError{Err: err}
	}
	return nil
}

// HistoryError reports a save that reached the disk but could not be recorded in history.
type HistoryError struct {
	Err error
}

func (e *HistoryError) Error() string { return fmt.Sprintf("record history: %v", e.Err) }

func (e *HistoryError) Unwrap() error { return e.Err }
