package task

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/deixis/stagehand/internal/runner"
)

var (
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✔")
	warnMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("⚠")
	failMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✖")
)

// Status classifies a single task outcome.
type Status string

const (
	Passed     Status = "passed"
	Failed     Status = "failed"     // non-zero exit
	Terminated Status = "terminated" // killed by a signal
)

// Outcome is the normalized result of one task.
type Outcome struct {
	Linter  string // the original, unparsed command string
	Status  Status
	Message string
	Result  runner.ExecResult
}

// TaskError carries a failed or terminated task's outcome. Display is the
// one human-readable rendition of the failure: aggregators must print
// Display and nothing else, or multiple concurrently failing tasks end up
// logged twice. Error() deliberately returns generic diagnostic text so a
// double-printing aggregator is easy to spot.
type TaskError struct {
	Linter  string
	Status  Status
	Display string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("linter %q did not pass", e.Linter)
}

// Classify maps a raw process result to an outcome and records it on the
// shared context. Anything other than a pass marks the context errored;
// a pass never touches the flag.
func Classify(name string, res runner.ExecResult, shared *Context) Outcome {
	o := Outcome{Linter: name, Result: res}

	switch {
	case res.Killed || res.Signal != "":
		shared.MarkErrored()
		o.Status = Terminated
		o.Message = fmt.Sprintf("%s %s was terminated with %s", warnMark, name, res.Signal)
	case res.Failed:
		shared.MarkErrored()
		o.Status = Failed
		// Header, then raw stdout, then raw stderr, each on its own
		// line, verbatim.
		o.Message = fmt.Sprintf("%s %s found some errors. Please fix them and try committing again.\n%s\n%s",
			failMark, name, res.Stdout, res.Stderr)
	default:
		o.Status = Passed
		o.Message = fmt.Sprintf("%s %s passed!", successMark, name)
	}

	shared.record(o)
	return o
}

// Err returns the single-render error for a non-passing outcome, nil for
// a pass.
func (o Outcome) Err() *TaskError {
	if o.Status == Passed {
		return nil
	}
	return &TaskError{Linter: o.Linter, Status: o.Status, Display: o.Message}
}
