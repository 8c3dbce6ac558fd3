package task

import (
	"context"
	"os"

	"github.com/deixis/stagehand/internal/runner"
)

// ProcessRunner executes one external lint process.
// Implemented by runner.Runner.
type ProcessRunner interface {
	Run(ctx context.Context, inv runner.Invocation) (runner.ExecResult, error)
}

// Options is the boundary input for one linter entry.
type Options struct {
	RepoRoot string
	Workdir  string // hook invocation directory; defaults to os.Getwd
	Commands Commands
	Paths    []string
	Shell    bool
	Runner   ProcessRunner
}

// Tasks resolves one linter entry into runnables bound to the shared
// per-run context. Spawn-level and generator errors pass through raw;
// lint failures and signal terminations come back as *TaskError.
func Tasks(opts Options, shared *Context) ([]Runnable, error) {
	workdir := opts.Workdir
	if workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workdir = wd
	}

	descs, err := BuildTasks(opts.Commands, opts.Paths, opts.RepoRoot, workdir, opts.Shell)
	if err != nil {
		return nil, err
	}

	run := make([]Runnable, 0, len(descs))
	for _, d := range descs {
		run = append(run, func(ctx context.Context) (string, error) {
			res, err := opts.Runner.Run(ctx, runner.Invocation{
				Command:    d.Name,
				Executable: d.Executable,
				Args:       d.Args,
				Paths:      d.Paths,
				Dir:        d.Dir,
				Shell:      d.Shell,
			})
			if err != nil {
				return "", err
			}
			o := Classify(d.Name, res, shared)
			if terr := o.Err(); terr != nil {
				return "", terr
			}
			return o.Message, nil
		})
	}
	return run, nil
}

// Run resolves and executes one linter entry as a concurrent batch,
// settling to either the ordered success messages or exactly one failure.
func Run(ctx context.Context, opts Options, shared *Context) ([]string, error) {
	tasks, err := Tasks(opts, shared)
	if err != nil {
		return nil, err
	}
	return RunAll(ctx, tasks)
}
