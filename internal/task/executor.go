package task

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// A Runnable produces one outcome message or a single-render error.
type Runnable func(ctx context.Context) (string, error)

// RunAll starts every task concurrently in declaration order and waits
// for the whole batch to settle. On success it returns the messages in
// declaration order. When tasks fail, exactly one error is surfaced; the
// other failures have already recorded their side effects on the shared
// context, but their messages are not. Keeping user-facing output to one
// failure report per run is deliberate.
//
// The group carries no cancellation: a task that would have passed must
// not be killed and reclassified just because a sibling failed first.
func RunAll(ctx context.Context, tasks []Runnable) ([]string, error) {
	return run(ctx, tasks, 0)
}

// RunSerial behaves like RunAll but keeps at most one task in flight,
// for configurations whose linters cannot safely overlap. The settle
// semantics are identical: every task still runs, and only the first
// failure is surfaced.
func RunSerial(ctx context.Context, tasks []Runnable) ([]string, error) {
	return run(ctx, tasks, 1)
}

func run(ctx context.Context, tasks []Runnable, limit int) ([]string, error) {
	msgs := make([]string, len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, t := range tasks {
		g.Go(func() error {
			msg, err := t(ctx)
			if err != nil {
				return err
			}
			msgs[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return msgs, nil
}
