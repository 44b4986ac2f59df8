package table

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testRow struct {
	ClusterID string  `csv:"cluster_id"`
	Size      int     `csv:"size"`
	Ratio     string  `csv:"ratio"`
	Ignored   float64 `csv:"-"`
}

func TestWriteTSV(t *testing.T) {
	rows := []testRow{
		{ClusterID: "c1", Size: 3, Ratio: FormatOptional(0.5, true), Ignored: 1},
		{ClusterID: "c2", Size: 1, Ratio: FormatOptional(0, false)},
	}

	var buf bytes.Buffer
	if err := WriteTSV(&buf, rows); err != nil {
		t.Fatalf("WriteTSV() error = %v", err)
	}

	want := "cluster_id\tsize\tratio\nc1\t3\t0.5\nc2\t1\tNA\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteTSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterStreams(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter[testRow](&buf)

	if err := w.Write(testRow{ClusterID: "c1", Size: 1, Ratio: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(testRow{ClusterID: "c2", Size: 2, Ratio: "1"}, testRow{ClusterID: "c3", Size: 3, Ratio: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "cluster_id\tsize\tratio\nc1\t1\t1\nc2\t2\t1\nc3\t3\t1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Writer mismatch (-want +got):\n%s", diff)
	}
	if w.Rows() != 3 {
		t.Errorf("Expected 3 rows, got %d", w.Rows())
	}
}

func TestWriterHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter[testRow](&buf)
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "cluster_id\tsize\tratio\n" {
		t.Errorf("Expected header only, got %q", got)
	}
}

func TestWriteMatrix(t *testing.T) {
	m := &Matrix{
		Corner:  "cluster_id",
		Columns: []string{"s1", "s2"},
		Rows:    []string{"c1", "c2"},
		Values:  [][]int{{2, 0}, {1, 3}},
	}

	var buf bytes.Buffer
	if err := WriteMatrix(&buf, m); err != nil {
		t.Fatalf("WriteMatrix() error = %v", err)
	}

	want := "cluster_id\ts1\ts2\nc1\t2\t0\nc2\t1\t3\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteMatrix() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteMatrixRaggedRow(t *testing.T) {
	m := &Matrix{
		Corner:  "cluster_id",
		Columns: []string{"s1", "s2"},
		Rows:    []string{"c1"},
		Values:  [][]int{{2}},
	}

	if err := WriteMatrix(&bytes.Buffer{}, m); err == nil {
		t.Error("Expected error for ragged row")
	}
}

func TestWriteSections(t *testing.T) {
	sections := []Section{
		{Title: "first", Header: []string{"name", "number"}, Rows: [][]string{{"a", "1"}}},
		{Title: "second", Header: []string{"x"}},
	}

	var buf bytes.Buffer
	if err := WriteSections(&buf, sections); err != nil {
		t.Fatalf("WriteSections() error = %v", err)
	}

	want := "# first\nname\tnumber\na\t1\n\n# second\nx\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteSections() mismatch (-want +got):\n%s", diff)
	}
}
