// Package git wraps the git commands the generator needs. Everything shells
// out to the git binary; no repository state is held in process.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// StagedDiff returns the full staged diff (git diff --cached), trimmed.
// An empty string means nothing is staged.
func StagedDiff() (string, error) {
	cmd := exec.Command("git", "diff", "--cached")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff --cached failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// BranchName returns the current branch name. Detached HEAD yields an empty
// string, which callers treat as "no branch context".
func BranchName() (string, error) {
	cmd := exec.Command("git", "branch", "--show-current")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git branch --show-current failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// StageAll stages every change in the working tree (git add --all).
func StageAll() error {
	if err := exec.Command("git", "add", "--all").Run(); err != nil {
		return fmt.Errorf("git add --all failed: %w", err)
	}
	return nil
}

// Commit records the staged changes with the given message.
func Commit(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	if err := exec.Command("git", "commit", "-m", message).Run(); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// Push pushes the current branch to its upstream.
func Push() error {
	if err := exec.Command("git", "push").Run(); err != nil {
		return fmt.Errorf("git push failed: %w", err)
	}
	return nil
}

// FindGitRoot returns the root directory of the enclosing git repository.
func FindGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
