package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deixis/stagehand/internal/report"
	"github.com/deixis/stagehand/internal/task"
)

// RunOutcome is the aggregated result of one run.
type RunOutcome struct {
	RunID    string
	Matched  int      // tasks that were actually built and started
	Messages []string // per-task success messages in declaration order; nil when Err is set
	Dirty    bool     // at least one task did not pass; partial modifications are suspect
	Err      error    // nil, a *task.TaskError, or a raw spawn error
	Report   *report.RunResult
}

// Run matches files against every configured linter, builds the full
// task batch, and executes it concurrently. Exactly one failure message
// is surfaced per run; every task that completed still has its outcome
// recorded in the report store. The returned error covers configuration
// and resolution problems only — task failures live on RunOutcome.Err.
func (e *Engine) Run(ctx context.Context, files []string) (*RunOutcome, error) {
	shared := task.NewContext()

	var tasks []task.Runnable
	for _, entry := range e.Config.Linters {
		matched, err := e.MatchFiles(entry.Pattern, files)
		if err != nil {
			return nil, fmt.Errorf("linter %q: %w", entry.Pattern, err)
		}
		if len(matched) == 0 {
			continue
		}

		batch, err := task.Tasks(task.Options{
			RepoRoot: e.RepoRoot,
			Workdir:  e.Workdir,
			Commands: task.List(entry.Commands),
			Paths:    matched,
			Shell:    e.Config.Shell,
			Runner:   e.Runner,
		}, shared)
		if err != nil {
			return nil, fmt.Errorf("linter %q: %w", entry.Pattern, err)
		}
		tasks = append(tasks, batch...)
	}

	execute := task.RunAll
	if !e.Config.Concurrent() {
		execute = task.RunSerial
	}
	msgs, runErr := execute(ctx, tasks)

	rr := &report.RunResult{ID: uuid.New().String(), Dirty: shared.HasErrors()}
	for _, o := range shared.Outcomes() {
		rr.Reports = append(rr.Reports, report.TaskReport{
			Linter:  o.Linter,
			Status:  string(o.Status),
			Message: o.Message,
			Stdout:  o.Result.Stdout,
			Stderr:  o.Result.Stderr,
			Signal:  o.Result.Signal,
		})
	}
	if e.Store != nil {
		// Best effort: a report store hiccup must not change the
		// run's result.
		_ = e.Store.Save(rr)
	}

	return &RunOutcome{
		RunID:    rr.ID,
		Matched:  len(tasks),
		Messages: msgs,
		Dirty:    rr.Dirty,
		Err:      runErr,
		Report:   rr,
	}, nil
}
