package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git-wait/gitdir"
	"git-wait/log"
)

func init() {
	log.Initialize()
}

func TestPendingLockNoRepository(t *testing.T) {
	_, ok := pendingLock(t.TempDir())
	require.False(t, ok)
}

func TestPendingLockNoLock(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	// Fast path: repository found, no lock, handoff is immediate.
	_, ok := pendingLock(root)
	require.False(t, ok)
}

func TestPendingLockPresent(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.Mkdir(gitDir, 0755))
	require.NoError(t, os.WriteFile(gitdir.LockFilePath(gitDir), nil, 0644))

	nested := filepath.Join(root, "sub", "dir")
	require.NoError(t, os.MkdirAll(nested, 0755))

	lockPath, ok := pendingLock(nested)
	require.True(t, ok)
	require.Equal(t, gitdir.LockFilePath(gitDir), lockPath)
}
