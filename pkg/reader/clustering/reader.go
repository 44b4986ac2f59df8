// Package clustering provides a streaming reader for .clustering files
// written by the spectra-cluster applications.
package clustering

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/shenwei356/xopen"
)

const (
	clusterMarker = "=Cluster="
	specPrefix    = "SPEC"

	idPrefix              = "id="
	precursorPrefix       = "av_precursor_mz="
	consensusMZPrefix     = "consensus_mz="
	consensusIntensPrefix = "consensus_intens="

	// minSpecFields is the number of tab separated fields of a SPEC line.
	// Additional trailing fields are kept as Spectrum.Extra.
	minSpecFields = 9

	maxLineSize = 64 * 1024 * 1024
)

// block accumulates the fields of the cluster currently being read.
type block struct {
	id              string
	hasID           bool
	precursorMZ     float64
	consensusMZ     []float64
	consensusIntens []float64
	spectra         []*core.Spectrum
}

func (b *block) cluster() *core.Cluster {
	return core.NewCluster(b.id, b.precursorMZ, b.consensusMZ, b.consensusIntens, b.spectra)
}

// Reader provides streaming access to .clustering files. Only the spectra
// of the current cluster are held in memory.
type Reader struct {
	scanner        *bufio.Scanner
	lineNum        int
	pending        *block
	currentCluster *core.Cluster
	err            error
}

// NewReader creates a new .clustering reader
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Reader{
		scanner: scanner,
	}
}

// Next advances to the next cluster. Returns false when no more clusters or error.
func (r *Reader) Next() bool {
	r.currentCluster = nil
	if r.err != nil {
		return false
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimRight(r.scanner.Text(), "\r")

		if strings.TrimSpace(line) == clusterMarker {
			// Blocks are back to back, so a marker also ends the previous block.
			finished := r.pending
			r.pending = &block{}
			if finished != nil && finished.hasID {
				r.currentCluster = finished.cluster()
				return true
			}
			continue
		}

		if r.pending == nil {
			continue
		}

		if err := r.parseLine(line); err != nil {
			r.err = err
			r.pending = nil
			return false
		}
	}

	if err := r.scanner.Err(); err != nil {
		r.err = err
		r.pending = nil
		return false
	}

	// The last block has no terminating marker.
	finished := r.pending
	r.pending = nil
	if finished != nil && finished.hasID {
		r.currentCluster = finished.cluster()
		return true
	}

	return false
}

// Cluster returns the current cluster
func (r *Reader) Cluster() *core.Cluster {
	return r.currentCluster
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// parseLine handles one line inside a cluster block. Unknown lines are
// ignored.
func (r *Reader) parseLine(line string) error {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	b := r.pending

	switch {
	case strings.HasPrefix(trimmed, specPrefix):
		spec, err := parseSpecLine(trimmed)
		if err != nil {
			return r.formatError(line, err)
		}
		b.spectra = append(b.spectra, spec)

	case strings.HasPrefix(trimmed, idPrefix):
		b.id = strings.TrimRightFunc(trimmed[len(idPrefix):], unicode.IsSpace)
		b.hasID = true

	case strings.HasPrefix(trimmed, precursorPrefix):
		mz, err := parseFloat(trimmed[len(precursorPrefix):])
		if err != nil {
			return r.formatError(line, &core.FormatError{Msg: "invalid av_precursor_mz", Err: err})
		}
		b.precursorMZ = mz

	case strings.HasPrefix(trimmed, consensusMZPrefix):
		values, err := parseFloatList(trimmed[len(consensusMZPrefix):])
		if err != nil {
			return r.formatError(line, &core.FormatError{Msg: "invalid consensus_mz", Err: err})
		}
		b.consensusMZ = values

	case strings.HasPrefix(trimmed, consensusIntensPrefix):
		values, err := parseFloatList(trimmed[len(consensusIntensPrefix):])
		if err != nil {
			return r.formatError(line, &core.FormatError{Msg: "invalid consensus_intens", Err: err})
		}
		b.consensusIntens = values
	}

	return nil
}

// formatError attaches the current line to err.
func (r *Reader) formatError(line string, err error) error {
	fe, ok := err.(*core.FormatError)
	if !ok {
		fe = &core.FormatError{Msg: "invalid line", Err: err}
	}
	if fe.Content != "" {
		fe.Msg += " '" + fe.Content + "'"
	}
	fe.Line = r.lineNum
	fe.Content = line
	return fe
}

// parseSpecLine parses a SPEC line:
// SPEC, title, flag, sequences, m/z, charge, taxids, PTM lists, score[, extra...]
func parseSpecLine(line string) (*core.Spectrum, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minSpecFields {
		return nil, &core.FormatError{
			Msg: "invalid SPEC line: expected " + strconv.Itoa(minSpecFields) +
				" tab-separated fields, got " + strconv.Itoa(len(fields)),
		}
	}

	precursorMZ, err := parseFloat(fields[4])
	if err != nil {
		return nil, &core.FormatError{Msg: "invalid SPEC precursor m/z", Err: err}
	}

	charge, err := parseFloat(fields[5])
	if err != nil {
		return nil, &core.FormatError{Msg: "invalid SPEC charge", Err: err}
	}

	sequences := strings.Split(fields[3], ",")
	ptmStrings := strings.Split(fields[7], ";")
	if len(sequences) != len(ptmStrings) {
		return nil, &core.FormatError{
			Msg: "invalid SPEC line: " + strconv.Itoa(len(sequences)) + " sequences but " +
				strconv.Itoa(len(ptmStrings)) + " PTM definitions",
		}
	}

	psms, err := createPSMs(sequences, ptmStrings)
	if err != nil {
		return nil, err
	}

	spec := core.NewSpectrum(fields[1], precursorMZ, charge, strings.Split(fields[6], ","), psms)
	spec.Flag = fields[2]
	spec.Score = strings.TrimSpace(fields[8])
	if len(fields) > minSpecFields {
		spec.Extra = append([]string(nil), fields[minSpecFields:]...)
	}

	return spec, nil
}

// createPSMs pairs sequences with their PTM lists. A single empty sequence
// encodes an unidentified spectrum; an empty entry in a longer list is an
// error.
func createPSMs(sequences, ptmStrings []string) ([]core.PSM, error) {
	if len(sequences) == 1 && strings.TrimSpace(sequences[0]) == "" {
		return nil, nil
	}

	psms := make([]core.PSM, 0, len(sequences))
	for i, seq := range sequences {
		if strings.TrimSpace(seq) == "" {
			return nil, &core.FormatError{
				Msg: "invalid SPEC line: empty sequence at position " + strconv.Itoa(i+1),
			}
		}

		ptms, err := core.ParsePTMs(ptmStrings[i])
		if err != nil {
			return nil, err
		}

		psms = append(psms, core.NewPSM(seq, ptms))
	}

	return psms, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := parseFloat(part)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// FileReader is a Reader that owns its input file.
type FileReader struct {
	*Reader
	file *xopen.Reader
}

// Open opens a .clustering file for reading. Compressed files are
// decompressed transparently and "-" reads standard input.
func Open(path string) (*FileReader, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return &FileReader{
		Reader: NewReader(f),
		file:   f,
	}, nil
}

// Close releases the underlying file.
func (r *FileReader) Close() error {
	return r.file.Close()
}

// All iterates over every cluster in the file at path. The file is closed
// when the loop ends, whether it finished, broke early or failed. An error
// is yielded once, with a nil cluster, as the last element.
func All(path string) iter.Seq2[*core.Cluster, error] {
	return func(yield func(*core.Cluster, error) bool) {
		r, err := Open(path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer r.Close()

		for r.Next() {
			if !yield(r.Cluster(), nil) {
				return
			}
		}
		if err := r.Err(); err != nil {
			yield(nil, err)
		}
	}
}
