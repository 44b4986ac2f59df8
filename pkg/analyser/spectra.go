package analyser

import (
	"io"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

// SpectrumInCluster maps a spectrum title to its cluster.
type SpectrumInCluster struct {
	ClusterID     string `csv:"cluster_id"`
	SpectrumTitle string `csv:"spectrum_title"`
}

// SpectraLister streams one row per clustered spectrum to a table.
type SpectraLister struct {
	Filter *filter.Config

	out *table.Writer[SpectrumInCluster]
}

// NewSpectraLister creates a SpectraLister writing to w.
func NewSpectraLister(w io.Writer) *SpectraLister {
	return &SpectraLister{out: table.NewWriter[SpectrumInCluster](w)}
}

// ProcessCluster implements Processor.
func (l *SpectraLister) ProcessCluster(cluster *core.Cluster) error {
	if ignore(l.Filter, cluster) {
		return nil
	}
	return l.out.Write(SpectrumRows(cluster)...)
}

// Flush completes the table.
func (l *SpectraLister) Flush() error {
	return l.out.Flush()
}

// Rows returns the number of spectra written.
func (l *SpectraLister) Rows() int {
	return l.out.Rows()
}

// SpectrumRows lists the spectra of a cluster by their raw title.
func SpectrumRows(cluster *core.Cluster) []SpectrumInCluster {
	rows := make([]SpectrumInCluster, cluster.NSpectra())
	for i, s := range cluster.Spectra() {
		rows[i] = SpectrumInCluster{ClusterID: cluster.ID, SpectrumTitle: s.Title}
	}
	return rows
}
