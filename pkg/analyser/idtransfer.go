package analyser

import (
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

// IdentificationReference assigns a cluster's main PSMs to one spectrum.
type IdentificationReference struct {
	Filename string
	SpecID   string
	PSMs     []core.PSM
}

// IDTransferRow is one line of the id transfer table.
type IDTransferRow struct {
	Filename string `csv:"filename"`
	SpecID   string `csv:"spec_id"`
	Sequence string `csv:"sequence"`
}

// Row renders the reference for the result table. PSMs are joined by ";".
func (r IdentificationReference) Row() IDTransferRow {
	psms := make([]string, len(r.PSMs))
	for i, p := range r.PSMs {
		psms[i] = p.String()
	}
	return IDTransferRow{
		Filename: orNA(r.Filename),
		SpecID:   orNA(r.SpecID),
		Sequence: strings.Join(psms, ";"),
	}
}

// IDTransferer transfers the majority identification of a cluster to its
// member spectra.
type IDTransferer struct {
	Filter            *filter.Config
	AddToIdentified   bool
	AddToUnidentified bool

	references []IdentificationReference
}

// NewIDTransferer creates an IDTransferer that reports all spectra.
func NewIDTransferer() *IDTransferer {
	return &IDTransferer{
		AddToIdentified:   true,
		AddToUnidentified: true,
	}
}

// ProcessCluster implements Processor. Clusters without identified spectra
// have nothing to transfer.
func (t *IDTransferer) ProcessCluster(cluster *core.Cluster) error {
	if ignore(t.Filter, cluster) || cluster.IdentifiedSpectra() < 1 {
		return nil
	}

	mainPSMs := MainPSMs(cluster)

	for _, s := range cluster.Spectra() {
		if s.IsIdentified() && !t.AddToIdentified {
			continue
		}
		if !s.IsIdentified() && !t.AddToUnidentified {
			continue
		}

		filename, _ := s.Filename()
		specID, _ := s.ID()
		t.references = append(t.references, IdentificationReference{
			Filename: filename,
			SpecID:   specID,
			PSMs:     mainPSMs,
		})
	}
	return nil
}

// References returns the collected identification references.
func (t *IDTransferer) References() []IdentificationReference {
	return t.references
}

// Rows returns the references as table rows.
func (t *IDTransferer) Rows() []IDTransferRow {
	rows := make([]IDTransferRow, len(t.references))
	for i, r := range t.references {
		rows[i] = r.Row()
	}
	return rows
}

// MainPSMs returns one PSM per max sequence of the cluster, each carrying
// the largest PTM set observed for that sequence.
func MainPSMs(cluster *core.Cluster) []core.PSM {
	maxSequences := cluster.MaxSequences()
	psms := make([]core.PSM, len(maxSequences))
	for i, seq := range maxSequences {
		psms[i] = richestPSM(cluster, seq)
	}
	return psms
}

func orNA(s string) string {
	if s == "" {
		return table.NA
	}
	return s
}
