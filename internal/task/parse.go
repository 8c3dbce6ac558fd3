package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// ErrEmptyCommand reports a command string with no executable after
// lexing. Resolution fails fast on it, before any process starts: a
// misconfigured linter should break the commit, not silently vanish.
var ErrEmptyCommand = errors.New("empty lint command")

// Descriptor is a fully resolved, ready-to-run process invocation.
type Descriptor struct {
	Name       string // original, unparsed command string
	Executable string
	Args       []string
	Dir        string // empty: inherit the process working directory
	Shell      bool
	Paths      []string // set only in shell mode, bound to "$@" by the runner
}

// ParseCommand lexes one command string with POSIX shell quoting rules.
// The first token is the executable, the rest the argument vector.
func ParseCommand(cmd string) (string, []string, error) {
	tokens, err := shlex.Split(cmd)
	if err != nil {
		return "", nil, fmt.Errorf("parsing %q: %w", cmd, err)
	}
	if len(tokens) == 0 {
		return "", nil, fmt.Errorf("%w: %q", ErrEmptyCommand, cmd)
	}
	return tokens[0], tokens[1:], nil
}

// InjectPaths appends the target paths to args unless they are already
// embedded. Paths keep their order and stay one argument each; they are
// never re-joined or re-escaped.
func InjectPaths(args, paths []string, embedded bool) []string {
	if embedded {
		return args
	}
	out := make([]string, 0, len(args)+len(paths))
	out = append(out, args...)
	return append(out, paths...)
}

// WorkingDir selects the working directory for a raw command line.
// git subcommands must resolve relative to the repository root no matter
// where the hook was invoked from; every other tool runs in the actual
// invocation directory so its own relative-path resolution stays intact.
func WorkingDir(rawCmd, repoRoot, workdir string) string {
	fields := strings.Fields(rawCmd)
	if len(fields) == 0 {
		return ""
	}
	switch strings.ToLower(fields[0]) {
	case "git", "git.exe":
		if repoRoot != workdir {
			return repoRoot
		}
	}
	return ""
}

// BuildTasks resolves a linter spec into descriptors, one per command.
// Everything here is synchronous; no process has started yet when it
// returns.
func BuildTasks(spec Commands, paths []string, repoRoot, workdir string, shell bool) ([]Descriptor, error) {
	res, err := Resolve(spec, paths)
	if err != nil {
		return nil, err
	}

	descs := make([]Descriptor, 0, len(res.Commands))
	for _, cmd := range res.Commands {
		exe, args, err := ParseCommand(cmd)
		if err != nil {
			return nil, err
		}
		d := Descriptor{
			Name:       cmd,
			Executable: exe,
			Args:       InjectPaths(args, paths, res.PathsEmbedded),
			Dir:        WorkingDir(cmd, repoRoot, workdir),
			Shell:      shell,
		}
		if shell && !res.PathsEmbedded {
			d.Paths = paths
		}
		descs = append(descs, d)
	}
	return descs, nil
}
