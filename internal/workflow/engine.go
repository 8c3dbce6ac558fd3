// Package workflow wires configuration, staged-file matching, and the
// task engine into complete lint runs. It is consumed by both the MCP
// server and the CLI.
package workflow

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/deixis/stagehand/internal/config"
	"github.com/deixis/stagehand/internal/report"
	"github.com/deixis/stagehand/internal/task"
)

// Engine holds shared dependencies for lint runs.
type Engine struct {
	Config   *config.Config
	Runner   task.ProcessRunner
	Store    report.Store // nil: runs are not recorded
	RepoRoot string
	Workdir  string // hook invocation directory
}

// MatchFiles filters files against one glob pattern. A pattern without a
// slash matches on the basename, so "*.go" applies to files in any
// directory; a pattern with a slash matches on the repo-relative path.
func (e *Engine) MatchFiles(pattern string, files []string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	baseOnly := !strings.Contains(pattern, "/")

	var out []string
	for _, f := range files {
		name := f
		if baseOnly {
			name = filepath.Base(f)
		} else if rel, err := filepath.Rel(e.RepoRoot, f); err == nil && !strings.HasPrefix(rel, "..") {
			name = filepath.ToSlash(rel)
		}
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}
