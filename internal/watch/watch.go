// Package watch re-resolves a read job whenever its source directories
// change and reports the new partition plan.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/c-a-ray/txtread/internal/core"
	"github.com/c-a-ray/txtread/internal/ops"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Options configures the watcher behavior.
type Options struct {
	Config   *core.Config
	Advice   int
	Debounce time.Duration                  // Quiet period before re-resolving
	OnPlan   func(groups []ops.Group) error // Called with every new plan
	OnError  func(err error)                // Called when a re-resolution fails
	Logger   *slog.Logger
}

// Watcher watches the traversal roots of a job.
type Watcher struct {
	opts    Options
	log     *slog.Logger
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Watcher{opts: opts, log: log}
}

// Run reports the current plan, then a new one after every burst of
// changes. It blocks until ctx is cancelled or the watcher fails. Failed
// re-resolutions go to OnError and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher
	defer watcher.Close()

	for _, spec := range w.opts.Config.Paths {
		p, err := core.CompilePattern(spec)
		if err != nil {
			return err
		}
		if err := w.addRoot(p.Root); err != nil {
			return err
		}
	}

	w.replan()

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			w.handleEvent(event)
			timer.Reset(w.opts.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)

		case <-timer.C:
			w.replan()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.log.Debug("change detected", "path", event.Name, "op", event.Op.String())
	if !event.Has(fsnotify.Create) {
		return
	}
	fi, err := os.Stat(event.Name)
	if err != nil || !fi.IsDir() {
		return
	}
	if err := w.addTree(event.Name); err != nil {
		w.log.Warn("cannot watch new directory", "path", event.Name, "err", err)
	}
}

func (w *Watcher) replan() {
	job, err := ops.Prepare(ops.PrepareOpts{Config: w.opts.Config, Logger: w.log})
	if err != nil {
		w.fail(err)
		return
	}
	if err := w.opts.OnPlan(job.Split(w.opts.Advice)); err != nil {
		w.fail(err)
	}
}

func (w *Watcher) fail(err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(err)
		return
	}
	w.log.Error("re-resolve failed", "err", err)
}

// addRoot watches a traversal root: a directory tree, or the directory
// holding a single file.
func (w *Watcher) addRoot(root string) error {
	fi, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &core.PathError{Kind: core.ErrPathNotFound, Path: root, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &core.PathError{Kind: core.ErrPermissionDenied, Path: root, Err: err}
	case err != nil:
		return err
	}
	if !fi.IsDir() {
		return w.watcher.Add(filepath.Dir(root))
	}
	return w.addTree(root)
}

func (w *Watcher) addTree(dir string) error {
	stack := []string{dir}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
		entries, err := os.ReadDir(d)
		if err != nil {
			return fmt.Errorf("list %s: %w", d, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				stack = append(stack, filepath.Join(d, e.Name()))
			}
		}
	}
	return nil
}
