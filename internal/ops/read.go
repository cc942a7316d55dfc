package ops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/c-a-ray/txtread/internal/core"
)

// ReadOpts configures how groups are streamed into a sink
type ReadOpts struct {
	Config *core.Config
	Sink   Sink
	Logger *slog.Logger
}

// ReadStats summarizes what a read produced
type ReadStats struct {
	Files   int
	Records int
	Dirty   int
}

func (s *ReadStats) add(o ReadStats) {
	s.Files += o.Files
	s.Records += o.Records
	s.Dirty += o.Dirty
}

// ReadAll streams every group on its own goroutine and waits for all of
// them. Failed groups do not stop the others; their errors are joined.
func ReadAll(groups []Group, o ReadOpts) (ReadStats, error) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total ReadStats
		errs  = make([]error, len(groups))
	)

	for i, g := range groups {
		wg.Go(func() {
			st, err := ReadGroup(g, o)
			mu.Lock()
			total.add(st)
			mu.Unlock()
			if err != nil {
				errs[i] = fmt.Errorf("group %d: %w", g.ID, err)
			}
		})
	}
	wg.Wait()

	return total, errors.Join(errs...)
}

// ReadGroup streams the group's files in order, flushing the sink after
// each one. The first failure stops the group; a file that vanished since
// resolution is reported as core.ErrFileUnavailable.
func ReadGroup(g Group, o ReadOpts) (ReadStats, error) {
	log := core.LoggerOrDiscard(o.Logger).With("group", g.ID)
	dec := core.NewRecordDecoder(o.Config.Columns, o.Config.NullFormat)

	var st ReadStats
	for _, path := range g.Files {
		log.Info("reading file", "path", path)

		fst, err := readFile(path, dec, o, log)
		st.add(fst)
		if err != nil {
			return st, err
		}
		if err := o.Sink.Flush(); err != nil {
			return st, fmt.Errorf("flush after %s: %w", path, err)
		}
		st.Files++
	}

	return st, nil
}

func readFile(path string, dec *core.RecordDecoder, o ReadOpts, log *slog.Logger) (ReadStats, error) {
	var st ReadStats

	rc, err := core.OpenSource(path, o.Config.Compress, o.Config.Encoding)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return st, &core.PathError{Kind: core.ErrFileUnavailable, Path: path, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return st, &core.PathError{Kind: core.ErrPermissionDenied, Path: path, Err: err}
	case err != nil:
		return st, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	cr := core.NewCSVReader(rc, o.Config.Delim, o.Config.LazyQuotes)
	if o.Config.SkipHeader {
		if _, err := cr.Read(); err == io.EOF {
			return st, nil
		} else if err != nil {
			return st, fmt.Errorf("%s: %w", path, err)
		}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("%s: %w", path, err)
		}

		rec, err := dec.Decode(row)
		if err != nil {
			st.Dirty++
			line, _ := cr.FieldPos(0)
			log.Warn("skip dirty record", "path", path, "line", line, "err", err)
			continue
		}

		if err := o.Sink.Send(rec); err != nil {
			return st, err
		}
		st.Records++
	}

	return st, nil
}
