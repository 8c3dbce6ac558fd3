package runner

// ExecResult holds the normalized outcome of one finished process.
// Non-zero exit and signal termination are data here, never errors.
type ExecResult struct {
	Stdout string // captured stdout, verbatim
	Stderr string // captured stderr, verbatim
	Failed bool   // process exited non-zero
	Killed bool   // process was terminated by a signal
	Signal string // signal name, e.g. "SIGTERM", when killed
}
