package task

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deixis/stagehand/internal/runner"
)

// fakeRunner returns canned results per executable name.
type fakeRunner struct {
	results map[string]runner.ExecResult
	spawn   error
}

func (f *fakeRunner) Run(_ context.Context, inv runner.Invocation) (runner.ExecResult, error) {
	if f.spawn != nil {
		return runner.ExecResult{}, f.spawn
	}
	return f.results[inv.Executable], nil
}

func TestRun_SuccessMessagesInOrder(t *testing.T) {
	fr := &fakeRunner{results: map[string]runner.ExecResult{
		"eslint":   {},
		"prettier": {},
	}}
	shared := NewContext()

	msgs, err := Run(context.Background(), Options{
		RepoRoot: "/repo",
		Workdir:  "/repo",
		Commands: List{"eslint --fix", "prettier --check"},
		Paths:    []string{"a.js"},
		Runner:   fr,
	}, shared)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if !strings.Contains(msgs[0], "eslint --fix passed!") {
		t.Errorf("msgs[0] = %q, want the eslint success message first", msgs[0])
	}
	if !strings.Contains(msgs[1], "prettier --check passed!") {
		t.Errorf("msgs[1] = %q, want the prettier success message second", msgs[1])
	}
}

func TestRun_FailureSurfacesDisplay(t *testing.T) {
	fr := &fakeRunner{results: map[string]runner.ExecResult{
		"eslint": {Failed: true, Stdout: "2 problems"},
	}}
	shared := NewContext()

	_, err := Run(context.Background(), Options{
		RepoRoot: "/repo",
		Workdir:  "/repo",
		Commands: Literal("eslint"),
		Paths:    []string{"a.js"},
		Runner:   fr,
	}, shared)

	var terr *TaskError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %T (%v), want *TaskError", err, err)
	}
	if !strings.Contains(terr.Display, "2 problems") {
		t.Errorf("Display = %q, want the raw tool output", terr.Display)
	}
	if !shared.HasErrors() {
		t.Error("HasErrors = false, want true")
	}
}

func TestRun_SpawnErrorStaysRaw(t *testing.T) {
	spawn := errors.New("spawning eslint: executable file not found in $PATH")
	fr := &fakeRunner{spawn: spawn}
	shared := NewContext()

	_, err := Run(context.Background(), Options{
		RepoRoot: "/repo",
		Workdir:  "/repo",
		Commands: Literal("eslint"),
		Paths:    []string{"a.js"},
		Runner:   fr,
	}, shared)

	if !errors.Is(err, spawn) {
		t.Errorf("err = %v, want the spawn error unmodified", err)
	}
	var terr *TaskError
	if errors.As(err, &terr) {
		t.Error("spawn errors must not be classified into TaskError")
	}
	// Spawn failures never reach the classifier, so the flag stays off.
	if shared.HasErrors() {
		t.Error("HasErrors = true, want false for an unclassified spawn error")
	}
}

func TestTasks_GeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("bad paths")
	gen := GeneratorFunc(func([]string) ([]string, error) { return nil, boom })

	_, err := Tasks(Options{
		RepoRoot: "/repo",
		Workdir:  "/repo",
		Commands: gen,
		Paths:    []string{"a.js"},
		Runner:   &fakeRunner{},
	}, NewContext())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the generator error unmodified", err)
	}
}
