package ops

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/c-a-ray/txtread/internal/core"
)

func TestReadGroup(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.csv", "id,name\n1,ann\n2,bob\n")
	b := writeTempFile(t, dir, "b.csv", "id,name\n3,cy\n")

	cfg := testConfig(dir)
	cfg.SkipHeader = true
	sink := &memSink{}

	st, err := ReadGroup(Group{Files: []string{a, b}}, ReadOpts{Config: cfg, Sink: sink})
	if err != nil {
		t.Fatalf("ReadGroup() error = %v", err)
	}

	if st.Files != 2 || st.Records != 3 || st.Dirty != 0 {
		t.Errorf("stats = %+v", st)
	}
	if sink.flushes != 2 {
		t.Errorf("expected a flush per file, got %d", sink.flushes)
	}
	want := [][]string{{"1", "ann"}, {"2", "bob"}, {"3", "cy"}}
	if !slices.EqualFunc(sink.rows, want, slices.Equal[[]string]) {
		t.Errorf("rows = %v, want %v", sink.rows, want)
	}
}

func TestReadGroup_DirtyRecordsAreSkipped(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.csv", "1;x\noops;y\n3\n4;z\n")

	idx0, idx1 := 0, 1
	cfg := testConfig(dir)
	cfg.Delim = ';'
	cfg.Columns = []core.Column{{Index: &idx0, Type: "long"}, {Index: &idx1, Type: "string"}}

	var logs bytes.Buffer
	sink := &memSink{}
	st, err := ReadGroup(Group{Files: []string{a}}, ReadOpts{
		Config: cfg,
		Sink:   sink,
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatalf("ReadGroup() error = %v", err)
	}

	if st.Records != 2 || st.Dirty != 2 {
		t.Errorf("stats = %+v, want 2 records and 2 dirty", st)
	}
	if !strings.Contains(logs.String(), "skip dirty record") {
		t.Errorf("expected dirty records to be logged, got:\n%s", logs.String())
	}
}

func TestReadGroup_FileRemovedAfterResolution(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.csv", "1\n")
	b := writeTempFile(t, dir, "b.csv", "2\n")
	writeTempFile(t, dir, "c.csv", "3\n")

	job, err := Prepare(PrepareOpts{Config: testConfig(dir)})
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if err := os.Remove(b); err != nil {
		t.Fatal(err)
	}

	sink := &memSink{}
	st, err := ReadGroup(job.Split(1)[0], ReadOpts{Config: job.Config, Sink: sink})
	if !errors.Is(err, core.ErrFileUnavailable) {
		t.Fatalf("ReadGroup() error = %v, want ErrFileUnavailable", err)
	}

	var pe *core.PathError
	if !errors.As(err, &pe) || pe.Path != b {
		t.Errorf("expected error naming %s, got %v", b, err)
	}
	if st.Files != 1 || len(sink.rows) != 1 {
		t.Errorf("expected only %s to be read before the failure, stats = %+v", a, st)
	}
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	var want []string
	for i := range 7 {
		name := string(rune('a'+i)) + ".csv"
		writeTempFile(t, dir, name, name+",1\n"+name+",2\n")
		want = append(want, name+",1", name+",2")
	}

	job, err := Prepare(PrepareOpts{Config: testConfig(filepath.Join(dir, "*.csv"))})
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	var out bytes.Buffer
	sink := NewCSVSink(&out, ',')
	st, err := ReadAll(job.Split(3), ReadOpts{Config: job.Config, Sink: sink})
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if st.Files != 7 || st.Records != 14 {
		t.Errorf("stats = %+v", st)
	}

	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestReadAll_OtherGroupsFinish(t *testing.T) {
	dir := t.TempDir()
	ok := writeTempFile(t, dir, "ok.csv", "1\n")
	missing := filepath.Join(dir, "gone.csv")

	sink := &memSink{}
	st, err := ReadAll([]Group{
		{ID: 0, Files: []string{missing}},
		{ID: 1, Files: []string{ok}},
	}, ReadOpts{Config: testConfig(dir), Sink: sink})

	if !errors.Is(err, core.ErrFileUnavailable) {
		t.Fatalf("ReadAll() error = %v, want ErrFileUnavailable", err)
	}
	if !strings.Contains(err.Error(), "group 0") {
		t.Errorf("error %q should name the failed group", err)
	}
	if st.Files != 1 || st.Records != 1 {
		t.Errorf("stats = %+v, want the healthy group read", st)
	}
}

func TestCSVSink(t *testing.T) {
	var out bytes.Buffer
	sink := NewCSVSink(&out, '|')

	recs := []core.Record{
		{{Type: core.TypeLong, Value: int64(1)}, {Type: core.TypeString, Value: "a|b"}},
		{{Type: core.TypeLong}, {Type: core.TypeBoolean, Value: false}},
	}
	for _, r := range recs {
		if err := sink.Send(r); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if want := "1|\"a|b\"\n|false\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
