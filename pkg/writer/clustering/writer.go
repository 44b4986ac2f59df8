// Package clustering writes clusters back to the .clustering format read
// by pkg/reader/clustering.
package clustering

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
)

// Writer serialises clusters. Output is buffered until Flush.
type Writer struct {
	w     *bufio.Writer
	count int
}

// NewWriter creates a .clustering writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteCluster writes one cluster block.
func (w *Writer) WriteCluster(c *core.Cluster) error {
	var b strings.Builder

	b.WriteString("=Cluster=\n")
	b.WriteString("id=" + c.ID + "\n")
	b.WriteString("av_precursor_mz=" + formatFloat(c.PrecursorMZ) + "\n")
	b.WriteString("av_precursor_intens=1.0\n")
	b.WriteString("consensus_mz=" + formatFloats(c.ConsensusMZ) + "\n")
	b.WriteString("consensus_intens=" + formatFloats(c.ConsensusIntens) + "\n")

	for _, s := range c.Spectra() {
		b.WriteString(specLine(s))
		b.WriteByte('\n')
	}

	if _, err := w.w.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write cluster %s: %w", c.ID, err)
	}
	w.count++
	return nil
}

// ProcessCluster writes the cluster, so a Writer can be used wherever a
// cluster processor is expected.
func (w *Writer) ProcessCluster(c *core.Cluster) error {
	return w.WriteCluster(c)
}

// Count returns the number of clusters written.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// specLine renders a spectrum as a SPEC line. Unidentified spectra have
// empty sequence and PTM fields.
func specLine(s *core.Spectrum) string {
	sequences := make([]string, len(s.PSMs))
	ptms := make([]string, len(s.PSMs))
	for i, p := range s.PSMs {
		sequences[i] = p.Sequence
		ptms[i] = core.FormatPTMs(p.PTMs)
	}

	flag := s.Flag
	if flag == "" {
		flag = strconv.FormatBool(s.IsIdentified())
	}
	score := s.Score
	if score == "" {
		score = "0.0"
	}

	fields := []string{
		"SPEC",
		s.Title,
		flag,
		strings.Join(sequences, ","),
		formatFloat(s.PrecursorMZ),
		formatFloat(s.Charge),
		strings.Join(s.TaxIDs, ","),
		strings.Join(ptms, ";"),
		score,
	}
	fields = append(fields, s.Extra...)

	return strings.Join(fields, "\t")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}
