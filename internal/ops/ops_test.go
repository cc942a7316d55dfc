package ops

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/c-a-ray/txtread/internal/core"
)

func writeTempFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func testConfig(paths ...string) *core.Config {
	cfg := core.NewConfig()
	cfg.Paths = paths
	return cfg
}

// memSink collects records and counts flushes
type memSink struct {
	mu      sync.Mutex
	rows    [][]string
	flushes int
}

func (s *memSink) Send(rec core.Record) error {
	row := make([]string, len(rec))
	for i, f := range rec {
		row[i] = f.String()
	}
	s.mu.Lock()
	s.rows = append(s.rows, row)
	s.mu.Unlock()
	return nil
}

func (s *memSink) Flush() error {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
	return nil
}
