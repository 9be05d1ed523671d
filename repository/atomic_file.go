package repository

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return writeViaTemp(path, data, perm, os.Rename)
}

// writeFileExclusive is writeFileAtomic for files that must never be
// replaced. It fails with fs.ErrExist when path is already taken.
func writeFileExclusive(path string, data []byte, perm os.FileMode) error {
	return writeViaTemp(path, data, perm, func(tmp, target string) error {
		if err := os.Link(tmp, target); err != nil {
			return err
		}
		return os.Remove(tmp)
	})
}

func writeViaTemp(path string, data []byte, perm os.FileMode, commit func(tmp, target string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := commit(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("move into %s: %w", path, err)
	}
	return nil
}
