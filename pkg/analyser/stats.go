package analyser

import (
	"math"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
)

// ClusteringStatistics summarises one .clustering file. Correct and
// incorrect spectra are only meaningful if the file carries
// identifications.
type ClusteringStatistics struct {
	Filename                   string `csv:"filename"`
	MinSize                    int    `csv:"min_size"`
	TotalClusters              int    `csv:"total_clusters"`
	TotalSpectra               int    `csv:"total_spectra"`
	IdentifiedSpectra          int    `csv:"identified_spectra"`
	ClusteredSpectra           int    `csv:"clustered_spectra"`
	ClusteredIdentifiedSpectra int    `csv:"clustered_identified_spectra"`
	CorrectSpectra             int    `csv:"correct_spectra"`
	IncorrectSpectra           int    `csv:"incorrect_spectra"`
	MinSizedClusters           int    `csv:"min_sized_clusters"`
}

// StatsCollector accumulates ClusteringStatistics. Clusters with at least
// MinSize identified spectra are evaluated: their majority spectra (I/L
// agnostic) count as correct, all other identified spectra as incorrect.
type StatsCollector struct {
	Filter *filter.Config

	stats ClusteringStatistics
}

// NewStatsCollector creates a collector for the named file.
func NewStatsCollector(filename string, minSize int) *StatsCollector {
	return &StatsCollector{
		stats: ClusteringStatistics{Filename: filename, MinSize: minSize},
	}
}

// ProcessCluster implements Processor.
func (s *StatsCollector) ProcessCluster(cluster *core.Cluster) error {
	if ignore(s.Filter, cluster) {
		return nil
	}

	st := &s.stats
	st.TotalClusters++
	st.TotalSpectra += cluster.NSpectra()
	st.IdentifiedSpectra += cluster.IdentifiedSpectra()

	identified := cluster.IdentifiedSpectra()
	if identified < st.MinSize || identified == 0 {
		return nil
	}

	ratio, _ := cluster.MaxILRatio()
	correct := int(math.Round(ratio * float64(identified)))

	st.MinSizedClusters++
	st.ClusteredSpectra += cluster.NSpectra()
	st.ClusteredIdentifiedSpectra += identified
	st.CorrectSpectra += correct
	st.IncorrectSpectra += identified - correct
	return nil
}

// Result returns the statistics collected so far.
func (s *StatsCollector) Result() ClusteringStatistics {
	return s.stats
}
