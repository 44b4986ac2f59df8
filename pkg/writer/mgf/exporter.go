// Package mgf exports cluster consensus spectra in MGF format.
package mgf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
)

// Exporter writes one MGF spectrum per accepted cluster.
type Exporter struct {
	Filter *filter.Config     // nil accepts all clusters
	Peaks  *filter.PeakConfig // nil writes all peaks

	w     *bufio.Writer
	count int
}

// NewExporter creates an MGF exporter
func NewExporter(w io.Writer) *Exporter {
	return &Exporter{w: bufio.NewWriter(w)}
}

// ProcessCluster writes the consensus spectrum of the cluster. Clusters
// whose consensus m/z and intensity lists differ in length are rejected.
func (e *Exporter) ProcessCluster(c *core.Cluster) error {
	if e.Filter != nil && e.Filter.Ignore(c) {
		return nil
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid consensus spectrum: %w", err)
	}

	sequence := "UNIDENTIFIED"
	if c.IdentifiedSpectra() > 0 {
		sequence = strings.Join(c.MaxSequences(), ",")
	}

	var b strings.Builder
	b.WriteString("BEGIN IONS\n")
	b.WriteString("TITLE=" + c.ID + ",sequence=" + sequence + "\n")
	b.WriteString("PEPMASS=" + round4(c.PrecursorMZ) + "\n")
	b.WriteString("CHARGE=" + strconv.Itoa(c.Charge()) + "\n")
	if c.IdentifiedSpectra() > 0 {
		b.WriteString("SEQUENCE=" + sequence + "\n")
	}

	peaks := filter.Peaks(c.ConsensusMZ, c.ConsensusIntens)
	if e.Peaks != nil {
		peaks = e.Peaks.Apply(peaks)
	}
	for _, p := range peaks {
		b.WriteString(round4(p.MZ) + " " + round4(p.Intensity) + "\n")
	}
	b.WriteString("END IONS\n\n")

	if _, err := e.w.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write cluster %s: %w", c.ID, err)
	}
	e.count++
	return nil
}

// Count returns the number of spectra written.
func (e *Exporter) Count() int {
	return e.count
}

// Flush writes buffered data to the underlying writer.
func (e *Exporter) Flush() error {
	return e.w.Flush()
}

func round4(v float64) string {
	return strconv.FormatFloat(core.RoundFloat(v, 4), 'f', -1, 64)
}
