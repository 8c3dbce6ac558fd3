// Package mcp provides the stagehand MCP server, exposing the lint
// engine and stored run results as tools.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/stagehand"
	"github.com/deixis/stagehand/internal/report"
	"github.com/deixis/stagehand/internal/workflow"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *workflow.Engine
	store  report.Store
}

// NewServer creates an MCP server with the stagehand tools registered.
func NewServer(engine *workflow.Engine, store report.Store) *mcp.Server {
	h := &handler{engine: engine, store: store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "stagehand", Version: stagehand.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "stage_run",
		Description: `Run the configured linters against the staged files.

Each matching linter runs concurrently; at most one failure message is
returned per run. Every task's outcome is stored for drill-down via
stage_inspect.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "stage_inspect",
		Description: `Drill into the recorded outcomes of a previous stage_run.

Use the run_id from a stage_run result. Filter by a substring of the
lint command to narrow the output.`,
	}, h.inspectHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
