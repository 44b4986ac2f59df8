package writer

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestPartFileCommit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.tsv")

	p, err := CreatePart(out)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	defer p.Abort()

	if _, err := io.WriteString(p, "a\tb\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be absent before Commit", out)
	}
	if _, err := os.Stat(PartPath(out)); err != nil {
		t.Errorf("Expected part file: %v", err)
	}

	if err := p.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a\tb\n" {
		t.Errorf("Expected %q, got %q", "a\tb\n", string(data))
	}
	if _, err := os.Stat(PartPath(out)); !os.IsNotExist(err) {
		t.Errorf("Expected part file to be gone after Commit")
	}
}

func TestPartFileAbort(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.tsv")

	p, err := CreatePart(out)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	io.WriteString(p, "partial")
	p.Abort()

	for _, path := range []string{out, PartPath(out)} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be absent after Abort", path)
		}
	}

	if _, err := p.Write([]byte("x")); err == nil {
		t.Error("Expected error writing after Abort")
	}
}

func TestCreatePartExistingOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.tsv")
	if err := os.WriteFile(out, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := CreatePart(out)
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("Expected ErrOutputExists, got %v", err)
	}

	data, _ := os.ReadFile(out)
	if string(data) != "old" {
		t.Errorf("Existing output was modified: %q", string(data))
	}
}

func TestPartFileGzip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.mgf.gz")

	p, err := CreatePart(out)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	io.WriteString(p, "BEGIN IONS\n")
	if err := p.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if _, err := os.Stat(PartPath(out)); !os.IsNotExist(err) {
		t.Errorf("Expected part file to be gone after Commit")
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	magic := make([]byte, 2)
	if _, err := io.ReadFull(f, magic); err != nil {
		t.Fatal(err)
	}
	if magic[0] != 0x1f || magic[1] != 0x8b {
		t.Fatalf("Expected gzip magic bytes, got %q", magic)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("Expected gzip output: %v", err)
	}
	data, _ := io.ReadAll(gz)
	if string(data) != "BEGIN IONS\n" {
		t.Errorf("Expected %q, got %q", "BEGIN IONS\n", string(data))
	}
}

func TestPartPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"result.tsv", "result.tsv.part"},
		{"result.db", "result.db.part"},
		{"result.mgf.gz", "result.mgf.part.gz"},
		{"out/result.MGF.GZ", "out/result.MGF.part.GZ"},
		{"result.tsv.xz", "result.tsv.part.xz"},
		{"result.tsv.zst", "result.tsv.part.zst"},
		{"result.clustering.bz2", "result.clustering.part.bz2"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := PartPath(tt.path); got != tt.want {
				t.Errorf("PartPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
