package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/openmined/libsync/internal/utils"
	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultFileTypes are the annotation file suffixes synced when none are given.
var DefaultFileTypes = []string{"fna", "faa", "ffn", "gbk", "gff"}

// IgnoreFileName is read from the sync root when present.
const IgnoreFileName = ".libsyncignore"

type selectConfig struct {
	patterns   []string
	ignoreFile string
}

type SelectOption func(*selectConfig)

// WithIgnorePatterns skips relative paths matching any of the doublestar globs.
func WithIgnorePatterns(patterns ...string) SelectOption {
	return func(c *selectConfig) {
		c.patterns = append(c.patterns, patterns...)
	}
}

// WithIgnoreFile skips paths matched by a gitignore style file in the root, if it exists.
func WithIgnoreFile(name string) SelectOption {
	return func(c *selectConfig) {
		c.ignoreFile = name
	}
}

// Filter decides which file names are synced. Hidden names never are.
type Filter struct {
	Types   []string
	Exclude bool
}

func (f Filter) Match(name string) bool {
	if utils.IsHidden(name) {
		return false
	}

	matched := false
	for _, t := range f.Types {
		if strings.HasSuffix(name, t) {
			matched = true
			break
		}
	}

	return matched != f.Exclude
}

// Select walks root and returns the files to sync relative to it, in walk order.
func Select(root string, filter Filter, opts ...SelectOption) ([]LocalPath, error) {
	if !utils.DirExists(root) {
		return nil, &ConfigurationError{Field: "directory", Value: root, Err: ErrNotFound}
	}

	// WalkDir does not follow a symlinked root, and mounted index trees often are one
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, &ConfigurationError{Field: "directory", Value: root, Err: err}
	}

	cfg := &selectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	for _, p := range cfg.patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, &ConfigurationError{Field: "ignore pattern", Value: p, Err: ErrInvalidPath}
		}
	}

	var ignore *gitignore.GitIgnore
	if cfg.ignoreFile != "" {
		ignorePath := filepath.Join(root, cfg.ignoreFile)
		if utils.FileExists(ignorePath) {
			var err error
			ignore, err = gitignore.CompileIgnoreFile(ignorePath)
			if err != nil {
				return nil, fmt.Errorf("ignore file %s: %w", ignorePath, err)
			}
			slog.Debug("loaded ignore file", "path", ignorePath)
		}
	}

	var paths []LocalPath
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !filter.Match(d.Name()) {
			return nil
		}

		if ignore != nil && ignore.MatchesPath(rel) {
			slog.Debug("ignored", "path", rel, "reason", cfg.ignoreFile)
			return nil
		}

		for _, p := range cfg.patterns {
			if ok, _ := doublestar.Match(p, rel); ok {
				slog.Debug("ignored", "path", rel, "pattern", p)
				return nil
			}
		}

		paths = append(paths, SplitLocalPath(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return paths, nil
}

// SelectFlat lists the files directly inside dir that pass the filter, sorted by name.
func SelectFlat(dir string, filter Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ConfigurationError{Field: "directory", Value: dir, Err: ErrNotFound}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 && !utils.FileExists(filepath.Join(dir, entry.Name())) {
			continue
		}
		if filter.Match(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
