package ops

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"github.com/c-a-ray/txtread/internal/core"
)

// Sink receives decoded records. Flush is called after every source file.
type Sink interface {
	Send(rec core.Record) error
	Flush() error
}

// CSVSink writes records as delimited text. It is safe for use by several
// groups at once; records never interleave mid-row.
type CSVSink struct {
	mu  sync.Mutex
	out *csv.Writer
	row []string
}

// NewCSVSink returns a sink writing to w with the given field delimiter
func NewCSVSink(w io.Writer, delim rune) *CSVSink {
	out := csv.NewWriter(w)
	out.Comma = delim
	return &CSVSink{out: out}
}

func (s *CSVSink) Send(rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.row = s.row[:0]
	for _, f := range rec {
		s.row = append(s.row, f.String())
	}
	if err := s.out.Write(s.row); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *CSVSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.Flush()
	return s.out.Error()
}
