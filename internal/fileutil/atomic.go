// Package fileutil provides atomic file writes.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite replaces path with data using a write-then-rename pattern, so
// readers never observe a partially written file.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename to final path: %w", err)
	}
	return nil
}

// AtomicCreate writes data to path only if path does not exist yet.
// The file appears fully written or not at all; an existing file is left
// untouched and the returned error matches fs.ErrExist.
func AtomicCreate(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	// link(2) fails with EEXIST instead of replacing the target.
	if err := os.Link(tmpPath, path); err != nil {
		return fmt.Errorf("link to final path: %w", err)
	}
	return nil
}

// writeTemp writes data to a synced temp file next to path and returns its name.
// The temp file is removed on failure.
func writeTemp(path string, data []byte, perm os.FileMode) (tmpPath string, err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath = tmpFile.Name()

	defer func() {
		if err != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	// CreateTemp uses 0600.
	if err = tmpFile.Chmod(perm); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}
