package task

import (
	"sync"
	"sync/atomic"
)

// Context is the per-run shared state, handed by reference to every
// concurrently running task. The error flag is monotonic within a run:
// once set it is never cleared by this package. Callers read it after the
// batch settles to decide whether partial modifications are suspect.
type Context struct {
	hasErrors atomic.Bool

	mu       sync.Mutex
	outcomes []Outcome
}

func NewContext() *Context { return &Context{} }

// MarkErrored records that at least one task did not pass.
func (c *Context) MarkErrored() { c.hasErrors.Store(true) }

// HasErrors reports whether any task in the run failed or was terminated.
func (c *Context) HasErrors() bool { return c.hasErrors.Load() }

func (c *Context) record(o Outcome) {
	c.mu.Lock()
	c.outcomes = append(c.outcomes, o)
	c.mu.Unlock()
}

// Outcomes returns every outcome recorded so far, in completion order.
// Only one failure message is ever surfaced through the executor; this is
// the side channel that keeps the rest queryable after the run.
func (c *Context) Outcomes() []Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Outcome(nil), c.outcomes...)
}
