// Package writer provides the output file handling shared by all writers.
// Results are written to a ".part" file next to the output and only
// renamed to their final name once complete, so an interrupted run never
// leaves a truncated result behind.
package writer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shenwei356/xopen"
)

const partSuffix = ".part"

// compressionSuffixes are the extensions xopen.Wopen compresses by.
var compressionSuffixes = []string{".gz", ".xz", ".zst", ".bz2"}

// ErrOutputExists is returned when the output file is already present.
var ErrOutputExists = errors.New("output file exists")

// CheckOutput fails if path already exists.
func CheckOutput(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check output file: %w", err)
	}
	return nil
}

// PartPath returns the temporary path results for path are written to.
// ".part" goes before a compression extension so the part file is
// compressed like the final output: "a.mgf.gz" becomes "a.mgf.part.gz".
func PartPath(path string) string {
	lower := strings.ToLower(path)
	for _, ext := range compressionSuffixes {
		if strings.HasSuffix(lower, ext) {
			n := len(path) - len(ext)
			return path[:n] + partSuffix + path[n:]
		}
	}
	return path + partSuffix
}

// Promote moves a completed part file to its final path.
func Promote(path string) error {
	if err := CheckOutput(path); err != nil {
		return err
	}
	if err := os.Rename(PartPath(path), path); err != nil {
		return fmt.Errorf("failed to rename output file: %w", err)
	}
	return nil
}

// PartFile is an output file that only appears under its final name after
// a successful Commit. Paths ending in ".gz", ".xz", ".zst" or ".bz2" are
// compressed accordingly.
type PartFile struct {
	path string
	w    *xopen.Writer
	done bool
}

// CreatePart creates the part file for path. It fails if path exists.
func CreatePart(path string) (*PartFile, error) {
	if err := CheckOutput(path); err != nil {
		return nil, err
	}

	w, err := xopen.Wopen(PartPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &PartFile{path: path, w: w}, nil
}

// Path returns the final output path.
func (p *PartFile) Path() string {
	return p.path
}

// Write implements io.Writer.
func (p *PartFile) Write(b []byte) (int, error) {
	if p.done {
		return 0, fmt.Errorf("write to closed output file %s", p.path)
	}
	return p.w.Write(b)
}

// Commit flushes and closes the part file and renames it to the final
// path. On failure the part file is removed.
func (p *PartFile) Commit() error {
	if p.done {
		return nil
	}
	p.done = true

	if err := p.w.Close(); err != nil {
		os.Remove(PartPath(p.path))
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := Promote(p.path); err != nil {
		os.Remove(PartPath(p.path))
		return err
	}
	return nil
}

// Abort closes and removes the part file. It is a no-op after Commit,
// so it can be deferred.
func (p *PartFile) Abort() {
	if p.done {
		return
	}
	p.done = true

	p.w.Close()
	os.Remove(PartPath(p.path))
}
