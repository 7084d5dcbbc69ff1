// Package gitops versions a moneytrack project directory with git so a
// file-backed ledger can be snapshotted and its history inspected.
package gitops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned by Commit when the tracked paths are
// unchanged since the last snapshot.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who snapshots are committed as.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Snapshot is one commit in the project history.
type Snapshot struct {
	Hash    string
	Date    string
	Message string
}

func git(dir string, env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	_, err := git(dir, nil, "init", "-q")
	return err
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Changed reports whether any of paths differ from the last commit.
func Changed(dir string, paths ...string) (bool, error) {
	out, err := git(dir, nil, append([]string{"status", "--porcelain", "--"}, paths...)...)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit stages paths and commits them as author. Returns the short
// commit hash, or ErrNothingToCommit when nothing changed.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	changed, err := Changed(dir, paths...)
	if err != nil {
		return "", err
	}
	if !changed {
		return "", ErrNothingToCommit
	}

	if _, err := git(dir, nil, append([]string{"add", "-A", "--"}, paths...)...); err != nil {
		return "", err
	}

	env := []string{
		"GIT_COMMITTER_NAME=" + author.Name,
		"GIT_COMMITTER_EMAIL=" + author.Email,
	}
	if _, err := git(dir, env, "commit", "-q", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}

	out, err := git(dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Log returns the newest n snapshots, newest first.
func Log(dir string, n int) ([]Snapshot, error) {
	out, err := git(dir, nil, "log", fmt.Sprintf("-n%d", n), "--date=short", "--format=%h%x09%ad%x09%s")
	if err != nil {
		return nil, err
	}

	var snapshots []Snapshot
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		snapshots = append(snapshots, Snapshot{Hash: parts[0], Date: parts[1], Message: parts[2]})
	}
	return snapshots, nil
}
