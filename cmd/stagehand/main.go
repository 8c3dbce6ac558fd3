// Command stagehand runs configured linters against the files staged
// for commit.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/stagehand"
	"github.com/deixis/stagehand/internal/config"
	"github.com/deixis/stagehand/internal/git"
	stagemcp "github.com/deixis/stagehand/internal/mcp"
	"github.com/deixis/stagehand/internal/report"
	"github.com/deixis/stagehand/internal/runner"
	"github.com/deixis/stagehand/internal/task"
	"github.com/deixis/stagehand/internal/workflow"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "stagehand"})

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(stagehand.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "stagehand: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: stagehand <command> [flags] [files]

Commands:
  run         Run the configured linters against the staged files
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "stagehand <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	shellFlag := fs.Bool("shell", false, "run lint commands through the shell")
	jsonFlag := fs.Bool("json", false, "output the run report as JSON")
	verboseFlag := fs.Bool("v", false, "echo each linter's output even when it passes")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine(*shellFlag)
	if err != nil {
		return err
	}

	// Explicit file arguments override git discovery.
	files := fs.Args()
	if len(files) == 0 {
		files, err = git.StagedFiles(ctx, eng.RepoRoot)
		if err != nil {
			return err
		}
	} else {
		for i, f := range files {
			abs, err := filepath.Abs(f)
			if err != nil {
				return err
			}
			files[i] = abs
		}
	}
	if len(files) == 0 {
		fmt.Println("No staged files; nothing to do.")
		return nil
	}

	outcome, err := eng.Run(ctx, files)
	if err != nil {
		return err
	}

	switch {
	case *jsonFlag:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome.Report); err != nil {
			return err
		}
	case outcome.Err == nil:
		for _, m := range outcome.Messages {
			fmt.Println(m)
		}
		if *verboseFlag {
			fmt.Print(formatToolOutput(outcome.Report))
		}
	default:
		var terr *task.TaskError
		if errors.As(outcome.Err, &terr) {
			// The dedicated display payload is the single rendition
			// of the failure; nothing else may print it.
			fmt.Fprintln(os.Stderr, terr.Display)
		} else {
			return outcome.Err
		}
	}

	if outcome.Dirty {
		os.Exit(1)
	}
	return nil
}

// formatToolOutput renders every linter's captured stdout and stderr,
// indented under its name. Linters that printed nothing are skipped.
func formatToolOutput(rr *report.RunResult) string {
	var b strings.Builder
	for _, r := range rr.Reports {
		if r.Stdout == "" && r.Stderr == "" {
			continue
		}
		fmt.Fprintf(&b, "--- %s\n", r.Linter)
		for _, out := range []string{r.Stdout, r.Stderr} {
			if out == "" {
				continue
			}
			for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return b.String()
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(stagemcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := newEngine(false)
	if err != nil {
		return err
	}

	server := stagemcp.NewServer(eng, eng.Store)
	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	logger.Info("listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

func newEngine(shell bool) (*workflow.Engine, error) {
	workdir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	loaded, err := config.Load(workdir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := loaded.Config
	if shell {
		cfg.Shell = true
	}

	store, err := report.NewMemoryStore(5, report.NewDiskStore())
	if err != nil {
		return nil, err
	}

	return &workflow.Engine{
		Config:   cfg,
		Runner:   &runner.Runner{Root: loaded.RepoRoot, PreferLocal: true},
		Store:    store,
		RepoRoot: loaded.RepoRoot,
		Workdir:  workdir,
	}, nil
}
