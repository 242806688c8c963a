package gitdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindInStartDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	found, ok := Find(root)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, ".git"), found)
}

func TestFindInAncestor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, ok := Find(nested)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, ".git"), found)
}

func TestFindPrefersNearest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	inner := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0755))

	found, ok := Find(inner)
	require.True(t, ok)
	require.Equal(t, filepath.Join(inner, ".git"), found)
}

func TestFindGitlinkFile(t *testing.T) {
	// Submodules and linked worktrees have a .git *file* pointing at the
	// real metadata directory. Presence is presence.
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: ../..\n"), 0644))

	found, ok := Find(root)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, ".git"), found)
}

func TestFindNotFound(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, ok := Find(nested)
	require.False(t, ok)
	require.Empty(t, found)
}

func TestLockFilePath(t *testing.T) {
	require.Equal(t, filepath.Join("/repo", ".git", "index.lock"),
		LockFilePath(filepath.Join("/repo", ".git")))
}

func TestLockFileExists(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")
	require.NoError(t, os.Mkdir(gitDir, 0755))

	require.False(t, LockFileExists(gitDir))

	require.NoError(t, os.WriteFile(LockFilePath(gitDir), nil, 0644))
	require.True(t, LockFileExists(gitDir))
}
