package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/stagehand/internal/report"
)

type inspectParams struct {
	RunID  string `json:"run_id" jsonschema:"the run ID from a stage_run result"`
	Linter string `json:"linter,omitempty" jsonschema:"substring of a lint command to filter by; empty returns every recorded outcome"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	result, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	reports := report.ByLinter(result, params.Linter)
	if len(reports) == 0 {
		return textResult(fmt.Sprintf("No recorded outcomes for %q in run %s.", params.Linter, params.RunID))
	}

	return textResult(formatInspect(result, reports))
}

func formatInspect(result *report.RunResult, reports []report.TaskReport) string {
	var b strings.Builder

	state := "clean"
	if result.Dirty {
		state = "dirty"
	}
	fmt.Fprintf(&b, "Run: %s (%s)\n\n", result.ID, state)

	for _, r := range reports {
		fmt.Fprintf(&b, "%s — %s\n", r.Linter, r.Status)
		if r.Signal != "" {
			fmt.Fprintf(&b, "    signal: %s\n", r.Signal)
		}
		writeIndented(&b, "stdout", r.Stdout)
		writeIndented(&b, "stderr", r.Stderr)
	}
	return b.String()
}

func writeIndented(b *strings.Builder, label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(b, "    %s:\n", label)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(b, "        %s\n", line)
	}
}
