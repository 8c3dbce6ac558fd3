package mcp

import (
	"errors"
	"strings"
	"testing"

	"github.com/deixis/stagehand/internal/report"
	"github.com/deixis/stagehand/internal/task"
	"github.com/deixis/stagehand/internal/workflow"
)

func TestFormatRun_AllPass(t *testing.T) {
	out := formatRun(&workflow.RunOutcome{
		RunID:    "run-1",
		Matched:  2,
		Messages: []string{"✔ eslint passed!", "✔ prettier passed!"},
	})

	if !strings.Contains(out, "run-1") {
		t.Errorf("output = %q, want the run id", out)
	}
	if !strings.Contains(out, "eslint passed!") || !strings.Contains(out, "prettier passed!") {
		t.Errorf("output = %q, want every success message", out)
	}
	if !strings.Contains(out, "stage_inspect") {
		t.Errorf("output = %q, want the inspect hint", out)
	}
}

func TestFormatRun_NoMatches(t *testing.T) {
	out := formatRun(&workflow.RunOutcome{RunID: "run-1"})
	if !strings.Contains(out, "No linter matched") {
		t.Errorf("output = %q, want the no-match notice", out)
	}
}

func TestFormatFailure_RendersDisplayOnce(t *testing.T) {
	display := "✖ eslint found some errors. Please fix them and try committing again.\n2 problems\n"
	out := formatFailure(&workflow.RunOutcome{
		RunID: "run-1",
		Dirty: true,
		Err:   &task.TaskError{Linter: "eslint", Status: task.Failed, Display: display},
	})

	if got := strings.Count(out, "found some errors"); got != 1 {
		t.Errorf("display payload rendered %d times, want exactly once", got)
	}
	// The generic Error() text must not leak alongside the display.
	if strings.Contains(out, "did not pass") {
		t.Errorf("output = %q, generic error text must not be printed with the display payload", out)
	}
}

func TestFormatFailure_RawError(t *testing.T) {
	out := formatFailure(&workflow.RunOutcome{
		RunID: "run-1",
		Err:   errors.New("spawning eslint: executable file not found in $PATH"),
	})
	if !strings.Contains(out, "executable file not found") {
		t.Errorf("output = %q, want the raw spawn error", out)
	}
}

func TestFormatInspect(t *testing.T) {
	rr := &report.RunResult{
		ID:    "run-1",
		Dirty: true,
		Reports: []report.TaskReport{
			{Linter: "eslint --fix", Status: "failed", Stdout: "2 problems"},
			{Linter: "sh -c slow", Status: "terminated", Signal: "SIGTERM"},
		},
	}

	out := formatInspect(rr, rr.Reports)
	if !strings.Contains(out, "run-1 (dirty)") {
		t.Errorf("output = %q, want the dirty run header", out)
	}
	if !strings.Contains(out, "eslint --fix — failed") {
		t.Errorf("output = %q, want the failed report line", out)
	}
	if !strings.Contains(out, "2 problems") {
		t.Errorf("output = %q, want the recorded stdout", out)
	}
	if !strings.Contains(out, "signal: SIGTERM") {
		t.Errorf("output = %q, want the signal line", out)
	}
}
