// Package runner executes external lint processes and reports their
// outcomes as data. A process that exits non-zero or dies to a signal is
// a normal completion here; only spawn-level failures (executable
// entirely unresolvable) surface as errors.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// Invocation describes one process to run.
type Invocation struct {
	Command    string   // original command line, used verbatim in shell mode
	Executable string   // resolved via PATH
	Args       []string // argument vector, target paths already injected
	Paths      []string // bound to "$@" in shell mode, one argument each
	Dir        string   // empty: inherit the process working directory
	Shell      bool     // run the command line through sh
}

// Runner spawns lint processes. Root is the repository root, used to
// prefer project-local binaries over global ones when PreferLocal is set.
type Runner struct {
	Root        string
	PreferLocal bool
}

// Run executes one invocation and blocks until the process finishes.
// The returned error is non-nil only when the process could not be
// spawned at all; everything the process itself does wrong is reported
// inside ExecResult. There is no timeout: a hung tool blocks until the
// caller's context is done.
func (r *Runner) Run(ctx context.Context, inv Invocation) (ExecResult, error) {
	cmd := r.command(ctx, inv)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	cmd.Env = r.environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	res := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return ExecResult{}, fmt.Errorf("spawning %s: %w", inv.Executable, runErr)
	}

	res.Failed = true
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		res.Killed = true
		res.Signal = unix.SignalName(ws.Signal())
	}
	return res, nil
}

// command builds the exec.Cmd for an invocation. Shell mode runs the raw
// command line through sh with the paths bound to "$@", so each path
// stays one argument even under shell interpretation.
func (r *Runner) command(ctx context.Context, inv Invocation) *exec.Cmd {
	if !inv.Shell {
		return exec.CommandContext(ctx, r.lookupLocal(inv.Executable), inv.Args...)
	}
	script := inv.Command
	if len(inv.Paths) > 0 {
		script += ` "$@"`
	}
	argv := append([]string{"-c", script, "sh"}, inv.Paths...)
	return exec.CommandContext(ctx, "sh", argv...)
}

// lookupLocal resolves a bare executable name against the repository's
// local tool directory. exec.Command resolves against the parent's PATH,
// not the child environment, so the preference has to happen here.
func (r *Runner) lookupLocal(exe string) string {
	if !r.PreferLocal || r.Root == "" || strings.ContainsRune(exe, os.PathSeparator) {
		return exe
	}
	local := filepath.Join(r.Root, "node_modules", ".bin", exe)
	if info, err := os.Stat(local); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
		return local
	}
	return exe
}

// environ returns the child environment, with the repository's local tool
// directory ahead of PATH when PreferLocal is set. Shell mode resolves
// tools through sh, which reads this PATH.
func (r *Runner) environ() []string {
	env := os.Environ()
	if !r.PreferLocal || r.Root == "" {
		return env
	}
	local := filepath.Join(r.Root, "node_modules", ".bin")
	for i, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			env[i] = "PATH=" + local + string(os.PathListSeparator) + strings.TrimPrefix(kv, "PATH=")
			return env
		}
	}
	return append(env, "PATH="+local)
}
