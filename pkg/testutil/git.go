// Package testutil provides git test helpers
package testutil

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"
)

// SkipIfNoGit skips the test if the git binary is not available
func SkipIfNoGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available:", err)
	}
}

// SetGitIdentity gives commits made by child git processes a fixed author
// so tests do not depend on the user's global git config.
func SetGitIdentity(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
}

// Git runs git in dir and returns its trimmed output, failing the test on error
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

// CommitCount returns the number of commits reachable from HEAD in dir
func CommitCount(t *testing.T, dir string) int {
	t.Helper()
	n, err := strconv.Atoi(Git(t, dir, "rev-list", "--count", "HEAD"))
	if err != nil {
		t.Fatalf("failed to parse commit count: %v", err)
	}
	return n
}
