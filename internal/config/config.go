// Package config loads the optional .stagehand YAML file from the
// repository root.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the repository root.
const FileName = ".stagehand"

// Entry pairs a glob pattern with the commands configured for it.
// Entries keep the order they appear in the file: task start order
// follows declaration order.
type Entry struct {
	Pattern  string
	Commands []string
}

// Config holds the parsed .stagehand configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version       int
	Shell         bool  // run commands through the shell
	RawConcurrent *bool // nil: default true
	Linters       []Entry
}

// Concurrent reports whether lint tasks may overlap. Defaults to true;
// "concurrent: false" runs the batch one task at a time for linters
// that cannot safely touch the same files in parallel.
func (c *Config) Concurrent() bool {
	if c.RawConcurrent != nil {
		return *c.RawConcurrent
	}
	return true
}

// UnmarshalYAML decodes the config by hand so the linters mapping keeps
// its file order, which a plain map would shuffle.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping at the top level")
	}
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "version":
			if err := val.Decode(&c.Version); err != nil {
				return err
			}
		case "shell":
			if err := val.Decode(&c.Shell); err != nil {
				return err
			}
		case "concurrent":
			if err := val.Decode(&c.RawConcurrent); err != nil {
				return err
			}
		case "linters":
			entries, err := decodeLinters(val)
			if err != nil {
				return err
			}
			c.Linters = entries
		}
	}
	return nil
}

// decodeLinters reads the pattern→command(s) mapping. A bare string is
// normalized to a single-element command list.
func decodeLinters(node *yaml.Node) ([]Entry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("linters must map patterns to a command or a list of commands")
	}
	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		e := Entry{Pattern: key.Value}
		switch val.Kind {
		case yaml.ScalarNode:
			e.Commands = []string{val.Value}
		case yaml.SequenceNode:
			if err := val.Decode(&e.Commands); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("linter %q must be a command or a list of commands", key.Value)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadResult holds the parsed config and the discovered repository root.
type LoadResult struct {
	Config   *Config
	RepoRoot string // directory containing .git; falls back to workdir
}

// Load reads the .stagehand file from the repository root. The root is
// discovered by walking upward from workdir looking for .git. If no
// .stagehand file exists, a default Config is returned.
func Load(workdir string) (*LoadResult, error) {
	root, err := findRepoRoot(workdir)
	if err != nil {
		root = workdir
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: &Config{}, RepoRoot: root}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &LoadResult{Config: cfg, RepoRoot: root}, nil
}

// findRepoRoot walks upward from dir looking for a .git entry. A plain
// file counts too, for worktrees and submodules.
func findRepoRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf(".git not found")
		}
		dir = parent
	}
}
