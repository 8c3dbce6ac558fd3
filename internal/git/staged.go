// Package git reads the staged-file list for a repository.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// StagedFiles returns the absolute paths of files staged for commit in
// the repository at root, in index order. Deleted files are excluded; a
// linter cannot run on a path that no longer exists.
func StagedFiles(ctx context.Context, root string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("listing staged files: %s", msg)
		}
		return nil, fmt.Errorf("listing staged files: %w", err)
	}
	return parseNameList(stdout.Bytes(), root), nil
}

// parseNameList splits NUL-separated repo-relative paths and makes them
// absolute against root. NUL separation keeps paths with spaces or
// newlines intact.
func parseNameList(out []byte, root string) []string {
	var files []string
	for _, p := range bytes.Split(out, []byte{0}) {
		if len(p) == 0 {
			continue
		}
		files = append(files, filepath.Join(root, string(p)))
	}
	return files
}
