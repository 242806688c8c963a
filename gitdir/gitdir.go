// Package gitdir locates the git metadata directory for the working
// directory the wrapper was invoked from.
package gitdir

import (
	"os"
	"path/filepath"
)

const (
	// GitDirName is the metadata directory git keeps per repository.
	GitDirName = ".git"
	// IndexLockName is the lock file git creates next to the index while
	// an operation holds exclusive access to it.
	IndexLockName = "index.lock"
)

// Find walks upward from startDir looking for an entry named ".git"
// directly beneath each candidate directory. It returns the path of the
// first match and true, or ("", false) once the filesystem root is reached
// without one.
//
// The check is pure presence: a .git gitlink file (submodule or linked
// worktree) satisfies it just like a directory does, and a failed stat of
// any kind counts as absence. Git performs its own full discovery after the
// handoff, so nothing stricter is needed here.
func Find(startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, GitDirName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LockFilePath returns the path of the index lock inside gitDir.
func LockFilePath(gitDir string) string {
	return filepath.Join(gitDir, IndexLockName)
}

// LockFileExists reports whether the index lock is currently present.
func LockFileExists(gitDir string) bool {
	_, err := os.Stat(LockFilePath(gitDir))
	return err == nil
}
