package config

import (
	"os"
	"path/filepath"
)

const lockFileName = "config.lock"

// FileLock provides file-based locking for cross-process synchronization.
// Several wrapper processes routinely start at once (that is the whole point
// of the tool), so the first-run config write needs real mutual exclusion.
// It uses a separate lock file rather than locking the data file directly.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock for the given path.
// The lock file will be created in the same directory as the given path.
func NewFileLock(path string) *FileLock {
	lockPath := filepath.Join(filepath.Dir(path), lockFileName)
	return &FileLock{
		path: lockPath,
	}
}
