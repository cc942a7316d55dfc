package ops

import (
	"bytes"
	"strings"
	"testing"
)

func TestWritePlan(t *testing.T) {
	groups := []Group{
		{ID: 0, Files: []string{"/d/a.csv", "/d/b.csv"}},
		{ID: 1, Files: []string{"/d/c.csv"}},
	}

	var plain bytes.Buffer
	if err := WritePlan(&plain, groups, false); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	if want := "0\t/d/a.csv\n0\t/d/b.csv\n1\t/d/c.csv\n"; plain.String() != want {
		t.Errorf("plain plan = %q, want %q", plain.String(), want)
	}

	var table bytes.Buffer
	if err := WritePlan(&table, groups, true); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	out := table.String()
	if !strings.HasPrefix(out, "GROUP") {
		t.Errorf("expected a header, got:\n%s", out)
	}
	if !strings.Contains(out, "1      1      /d/c.csv") {
		t.Errorf("expected aligned row for group 1, got:\n%s", out)
	}
}

func TestWriteFiles(t *testing.T) {
	var out bytes.Buffer
	if err := WriteFiles(&out, []string{"/a", "/b"}); err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	if out.String() != "/a\n/b\n" {
		t.Errorf("output = %q", out.String())
	}
}
