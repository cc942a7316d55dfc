package ops

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/c-a-ray/txtread/internal/core"
)

// PrepareOpts configures job preparation
type PrepareOpts struct {
	Config *core.Config
	Logger *slog.Logger
}

// Job is a validated read job with its resolved source files
type Job struct {
	Config *core.Config
	Files  []string
}

// Group is one partition of a job's files, read by a single worker
type Group struct {
	ID    int
	Files []string
}

// Prepare validates the configuration and resolves its paths. A job that
// resolves to no files is rejected with core.ErrEmptyResultSet.
func Prepare(o PrepareOpts) (*Job, error) {
	log := core.LoggerOrDiscard(o.Logger)

	if err := o.Config.Validate(); err != nil {
		return nil, err
	}

	files, err := core.ResolvePaths(o.Config.Paths, core.ResolveOpts{Logger: log})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: check path %s", core.ErrEmptyResultSet, strings.Join(o.Config.Paths, ", "))
	}

	log.Info("resolved files to read", "count", len(files))

	return &Job{Config: o.Config, Files: files}, nil
}

// Split partitions the job's files into at most advice groups
func (j *Job) Split(advice int) []Group {
	parts := core.Partition(j.Files, advice)
	groups := make([]Group, len(parts))
	for i, p := range parts {
		groups[i] = Group{ID: i, Files: p}
	}
	return groups
}
