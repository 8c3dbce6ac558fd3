// Package report provides structured persistence and retrieval of lint
// run results. Exactly one failure message is surfaced while a run is
// live; the store keeps every recorded outcome queryable afterwards.
package report

import "strings"

// Store persists and retrieves run results.
type Store interface {
	Save(result *RunResult) error
	Load(runID string) (*RunResult, error)
}

// RunResult holds every task outcome recorded during one run.
type RunResult struct {
	ID      string       `json:"id"`
	Dirty   bool         `json:"dirty"` // at least one task failed or was terminated
	Reports []TaskReport `json:"reports,omitempty"`
}

// TaskReport is one lint command's recorded outcome.
type TaskReport struct {
	Linter  string `json:"linter"` // the original command string
	Status  string `json:"status"` // passed, failed, terminated
	Message string `json:"message"`
	Stdout  string `json:"stdout,omitempty"`
	Stderr  string `json:"stderr,omitempty"`
	Signal  string `json:"signal,omitempty"`
}

// ByLinter returns the reports whose command string contains needle.
// An empty needle returns every report.
func ByLinter(result *RunResult, needle string) []TaskReport {
	if needle == "" {
		return result.Reports
	}
	var out []TaskReport
	for _, r := range result.Reports {
		if strings.Contains(r.Linter, needle) {
			out = append(out, r)
		}
	}
	return out
}
