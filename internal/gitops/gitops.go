// Package gitops shells out to git for the diary commit workflow.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies the committer for generated commits. Zero value
// means git's configured identity.
type Author struct {
	Name  string
	Email string
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// FindRoot returns the repository root containing path.
func FindRoot(path string) (string, error) {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s is not inside a git repository", path)
	}
	return strings.TrimSpace(string(out)), nil
}

// Commit stages the given files and commits them. A clean tree ("nothing
// to commit") is success with an empty hash. Returns the short commit hash.
func Commit(root string, files []string, message string, author Author) (string, error) {
	add := exec.Command("git", append([]string{"add", "--"}, files...)...)
	add.Dir = root
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	args := []string{"commit", "-m", message}
	if author.Name != "" {
		args = append(args, "--author", fmt.Sprintf("%s <%s>", author.Name, author.Email))
	}
	args = append(args, "--")
	args = append(args, files...)
	commit := exec.Command("git", args...)
	commit.Dir = root
	if out, err := commit.CombinedOutput(); err != nil {
		if strings.Contains(string(out), "nothing to commit") ||
			strings.Contains(string(out), "no changes added to commit") {
			return "", nil
		}
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = root
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Push pushes the current branch to its upstream.
func Push(root string) error {
	cmd := exec.Command("git", "push")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git push: %s: %w", out, err)
	}
	return nil
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := FindRoot(dir)
	return err == nil
}

// GroupByRepo maps each file to its repository root so edits spanning
// several diaries commit once per repository. Paths are made relative to
// their root.
func GroupByRepo(files []string) (map[string][]string, error) {
	groups := make(map[string][]string)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		root, err := FindRoot(abs)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return nil, err
		}
		groups[root] = append(groups[root], rel)
	}
	return groups, nil
}
