package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/stagehand/internal/git"
	"github.com/deixis/stagehand/internal/task"
	"github.com/deixis/stagehand/internal/workflow"
)

type runParams struct {
	Files []string `json:"files,omitempty" jsonschema:"absolute file paths to lint; defaults to the files currently staged for commit"`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	files := params.Files
	if len(files) == 0 {
		var err error
		files, err = git.StagedFiles(ctx, h.engine.RepoRoot)
		if err != nil {
			return errorResult(fmt.Sprintf("Failed to list staged files: %v", err))
		}
	}
	if len(files) == 0 {
		return textResult("No staged files; nothing to lint.")
	}

	outcome, err := h.engine.Run(ctx, files)
	if err != nil {
		return errorResult(fmt.Sprintf("run failed: %v", err))
	}

	if outcome.Err != nil {
		return errorResult(formatFailure(outcome))
	}
	return textResult(formatRun(outcome))
}

func formatRun(outcome *workflow.RunOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s\n\n", outcome.RunID)
	if outcome.Matched == 0 {
		fmt.Fprintln(&b, "No linter matched the staged files.")
		return b.String()
	}
	for _, m := range outcome.Messages {
		fmt.Fprintln(&b, m)
	}
	fmt.Fprintf(&b, "\nInspect with stage_inspect(run_id=%q).\n", outcome.RunID)
	return b.String()
}

// formatFailure renders the run's single surfaced failure. Classified
// failures carry their one displayable message; anything else (spawn
// errors and the like) is printed through its normal error text.
func formatFailure(outcome *workflow.RunOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s\n\n", outcome.RunID)
	var terr *task.TaskError
	if errors.As(outcome.Err, &terr) {
		fmt.Fprintln(&b, terr.Display)
	} else {
		fmt.Fprintf(&b, "error: %v\n", outcome.Err)
	}
	fmt.Fprintf(&b, "\nOther concurrent failures, if any, are recorded; inspect with stage_inspect(run_id=%q).\n", outcome.RunID)
	return b.String()
}
