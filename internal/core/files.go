package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// ResolveOpts configures path resolution
type ResolveOpts struct {
	Logger *slog.Logger
}

// ResolvePaths expands path specifications into a sorted, deduplicated list
// of absolute regular-file paths. Specs are processed in order and the first
// failure stops resolution, naming the offending path. An empty result is
// returned as-is; rejecting it is up to the caller.
func ResolvePaths(specs []string, o ResolveOpts) ([]string, error) {
	if len(specs) == 0 {
		return nil, ErrMissingPathSpec
	}
	log := LoggerOrDiscard(o.Logger)

	patterns := make(map[string]*Pattern, len(specs))
	acc := make(map[string]struct{})

	for _, spec := range specs {
		p, ok := patterns[spec]
		if !ok {
			var err error
			p, err = CompilePattern(spec)
			if err != nil {
				return nil, err
			}
			patterns[spec] = p
		}

		if _, err := os.Stat(p.Root); err != nil {
			return nil, classifyStat(p.Root, err)
		}

		if err := walk(p, acc, log); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(acc))
	for f := range acc {
		files = append(files, f)
	}
	sort.Strings(files)

	return files, nil
}

// walk visits every regular file beneath p.Root with an explicit stack and
// adds the ones p matches to acc. Directory symlinks are followed; a
// directory reached twice is listed once. Only a missing root is
// PathNotFound: dangling links and entries removed mid-walk are skipped.
func walk(p *Pattern, acc map[string]struct{}, log *slog.Logger) error {
	stack := []string{p.Root}
	listed := make(map[string]struct{})
	gone := func(path string, err error) bool {
		return path != p.Root && errors.Is(err, fs.ErrNotExist)
	}

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fi, err := os.Stat(path)
		if err != nil {
			if gone(path, err) {
				log.Debug("skip vanished or dangling entry", "path", path)
				continue
			}
			return classifyStat(path, err)
		}

		switch {
		case fi.Mode().IsRegular():
			if !p.Match(path) {
				continue
			}
			if _, ok := acc[path]; !ok {
				acc[path] = struct{}{}
				log.Debug("add file as a candidate to be read", "path", path)
			}

		case fi.IsDir():
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				if gone(path, err) {
					log.Debug("skip vanished directory", "path", path)
					continue
				}
				return classifyStat(path, err)
			}
			if _, ok := listed[resolved]; ok {
				continue
			}
			listed[resolved] = struct{}{}

			entries, err := os.ReadDir(path)
			if err != nil {
				if gone(path, err) {
					log.Debug("skip vanished directory", "path", path)
					continue
				}
				return classifyList(path, err)
			}
			for i := len(entries) - 1; i >= 0; i-- {
				stack = append(stack, filepath.Join(path, entries[i].Name()))
			}

		default:
			log.Debug("skip non-regular file", "path", path, "mode", fi.Mode().String())
		}
	}

	return nil
}

func classifyStat(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return newPathError(ErrPathNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return newPathError(ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

// classifyList maps a failed directory listing. An unreadable directory must
// never look like an empty one.
func classifyList(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return newPathError(ErrPermissionDenied, path, err)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return newPathError(ErrPathNotFound, path, err)
	}
	return fmt.Errorf("list %s: %w", path, err)
}
