// Package task turns declarative linter specs into concrete process
// invocations and normalizes their outcomes. It is consumed by the
// workflow engine and by the MCP server, and makes no decisions about
// staging, restoring, or committing anything.
package task

// Commands describes how one linter entry derives its command lines.
// Exactly one of three variants applies: Literal, List, or GeneratorFunc.
type Commands interface {
	resolve(paths []string) (cmds []string, embedded bool, err error)
}

// Literal is a single command string, e.g. "eslint --fix".
type Literal string

func (l Literal) resolve([]string) ([]string, bool, error) {
	return []string{string(l)}, false, nil
}

// List is several command strings run as one entry.
type List []string

func (l List) resolve([]string) ([]string, bool, error) {
	return l, false, nil
}

// GeneratorFunc derives command strings from the target paths. Generated
// commands are treated as already embedding the paths, so they are never
// appended a second time — the mark applies to the whole resolution, not
// to individual commands. An error from the function propagates to the
// caller unmodified.
type GeneratorFunc func(paths []string) ([]string, error)

func (g GeneratorFunc) resolve(paths []string) ([]string, bool, error) {
	cmds, err := g(paths)
	if err != nil {
		return nil, false, err
	}
	return cmds, true, nil
}

// Resolution is the normalized form of a linter entry: the command lines
// to run and whether the target paths are already present in them.
type Resolution struct {
	Commands      []string
	PathsEmbedded bool
}

// Resolve normalizes a spec against the target paths. It performs no
// emptiness validation; a resolution with zero commands yields zero tasks.
func Resolve(spec Commands, paths []string) (Resolution, error) {
	cmds, embedded, err := spec.resolve(paths)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Commands: cmds, PathsEmbedded: embedded}, nil
}
