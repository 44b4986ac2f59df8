// Package analyser provides processors that consume a stream of clusters
// and collect per-tool results. Every analyser applies its Filter before
// looking at a cluster; a nil Filter accepts everything.
package analyser

import (
	"iter"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
)

// Processor consumes clusters one at a time.
type Processor interface {
	ProcessCluster(cluster *core.Cluster) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(cluster *core.Cluster) error

// ProcessCluster calls f(cluster).
func (f ProcessorFunc) ProcessCluster(cluster *core.Cluster) error {
	return f(cluster)
}

// Filtered passes only the clusters accepted by cfg on to p.
func Filtered(cfg *filter.Config, p Processor) Processor {
	return ProcessorFunc(func(cluster *core.Cluster) error {
		if ignore(cfg, cluster) {
			return nil
		}
		return p.ProcessCluster(cluster)
	})
}

// Run feeds every cluster of seq to each processor in order and returns
// the number of clusters read. It stops at the first error.
func Run(seq iter.Seq2[*core.Cluster, error], processors ...Processor) (int, error) {
	n := 0
	for cluster, err := range seq {
		if err != nil {
			return n, err
		}
		n++
		for _, p := range processors {
			if err := p.ProcessCluster(cluster); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func ignore(cfg *filter.Config, cluster *core.Cluster) bool {
	return cfg != nil && cfg.Ignore(cluster)
}

// richestPSM returns a PSM for the clean sequence carrying the largest PTM
// set seen among the cluster's spectra. The first PSM wins ties.
func richestPSM(cluster *core.Cluster, sequence string) core.PSM {
	var ptms []core.PTM
	for _, s := range cluster.Spectra() {
		for _, p := range s.PSMs {
			if p.CleanSequence() == sequence && len(p.PTMs) > len(ptms) {
				ptms = p.PTMs
			}
		}
	}
	return core.NewPSM(sequence, ptms)
}
