package task

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deixis/stagehand/internal/runner"
)

func classifying(name string, res runner.ExecResult, shared *Context) Runnable {
	return func(context.Context) (string, error) {
		o := Classify(name, res, shared)
		if terr := o.Err(); terr != nil {
			return "", terr
		}
		return o.Message, nil
	}
}

func TestRunAll_AllPass(t *testing.T) {
	shared := NewContext()
	tasks := []Runnable{
		classifying("a", runner.ExecResult{}, shared),
		classifying("b", runner.ExecResult{}, shared),
		classifying("c", runner.ExecResult{}, shared),
	}

	msgs, err := RunAll(context.Background(), tasks)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	// Declaration order, regardless of completion order.
	for i, name := range []string{"a", "b", "c"} {
		if !strings.Contains(msgs[i], name+" passed!") {
			t.Errorf("msgs[%d] = %q, want the %q success message", i, msgs[i], name)
		}
	}
	if shared.HasErrors() {
		t.Error("HasErrors = true, want false when everything passes")
	}
}

func TestRunAll_TwoFailuresOneSurfaced(t *testing.T) {
	shared := NewContext()
	tasks := []Runnable{
		classifying("fail1", runner.ExecResult{Failed: true, Stdout: "one"}, shared),
		classifying("pass", runner.ExecResult{}, shared),
		classifying("fail2", runner.ExecResult{Failed: true, Stdout: "two"}, shared),
	}

	msgs, err := RunAll(context.Background(), tasks)
	if err == nil {
		t.Fatal("RunAll = nil error, want a rejection")
	}
	if msgs != nil {
		t.Errorf("messages = %v, want nil on failure", msgs)
	}

	var terr *TaskError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %T, want *TaskError", err)
	}
	if terr.Linter != "fail1" && terr.Linter != "fail2" {
		t.Errorf("surfaced failure = %q, want one of the two failing linters", terr.Linter)
	}

	// Both failures' side effects landed even though only one message
	// surfaced.
	if !shared.HasErrors() {
		t.Error("HasErrors = false, want true")
	}
	failures := 0
	for _, o := range shared.Outcomes() {
		if o.Status == Failed {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("recorded failures = %d, want 2", failures)
	}
}

func TestRunSerial_NoOverlap(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	tracked := func(name string, shared *Context) Runnable {
		return func(ctx context.Context) (string, error) {
			cur := inFlight.Add(1)
			for {
				seen := maxInFlight.Load()
				if cur <= seen || maxInFlight.CompareAndSwap(seen, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return classifying(name, runner.ExecResult{}, shared)(ctx)
		}
	}

	shared := NewContext()
	tasks := []Runnable{
		tracked("a", shared),
		tracked("b", shared),
		tracked("c", shared),
	}

	msgs, err := RunSerial(context.Background(), tasks)
	if err != nil {
		t.Fatalf("RunSerial: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if got := maxInFlight.Load(); got != 1 {
		t.Errorf("max in-flight tasks = %d, want 1", got)
	}
}

func TestRunSerial_FailureDoesNotStopTheBatch(t *testing.T) {
	shared := NewContext()
	tasks := []Runnable{
		classifying("fail", runner.ExecResult{Failed: true}, shared),
		classifying("pass", runner.ExecResult{}, shared),
	}

	_, err := RunSerial(context.Background(), tasks)
	if err == nil {
		t.Fatal("RunSerial = nil error, want a rejection")
	}
	// Same settle semantics as the concurrent mode: the later task
	// still ran and recorded its outcome.
	if got := len(shared.Outcomes()); got != 2 {
		t.Errorf("recorded outcomes = %d, want 2", got)
	}
}

func TestRunAll_Empty(t *testing.T) {
	msgs, err := RunAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("messages = %v, want none", msgs)
	}
}
