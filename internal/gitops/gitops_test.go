package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthor = Author{Name: "Test Author", Email: "test@example.com"}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	err := Init(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "money-tracker-accounts.json"), []byte("[]"), 0o644))

	hash, err := Commit(dir, "snapshot: accounts", testAuthor, "data")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify author.
	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err := authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Test Author <test@example.com>")

	_, err = Commit(dir, "snapshot: again", testAuthor, "data")
	assert.ErrorIs(t, err, ErrNothingToCommit)
}

func TestCommit_OnlyTrackedPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o644))

	_, err := Commit(dir, "snapshot", testAuthor, "data")
	assert.ErrorIs(t, err, ErrNothingToCommit)

	changed, err := Changed(dir, ".")
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	for _, name := range []string{"a.json", "b.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
		_, err := Commit(dir, "add "+name, testAuthor)
		require.NoError(t, err)
	}

	snapshots, err := Log(dir, 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "add b.json", snapshots[0].Message)
	assert.Equal(t, "add a.json", snapshots[1].Message)
	assert.NotEmpty(t, snapshots[0].Date)
}
