package filter

import (
	"regexp"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
)

// projectPattern matches PRIDE project accessions such as PRD000001 or
// PXD004732.
var projectPattern = regexp.MustCompile(`P[A-Z]D\d{6}`)

// ProjectAccession returns the first PRIDE project accession in a
// spectrum title.
func ProjectAccession(title string) (string, bool) {
	acc := projectPattern.FindString(title)
	return acc, acc != ""
}

// KeepProjects reduces the cluster to the spectra whose title names one of
// the given projects and returns the number of spectra removed. Spectra
// without a project accession are removed as well.
func KeepProjects(cluster *core.Cluster, projects map[string]bool) int {
	var kept []*core.Spectrum
	for _, s := range cluster.Spectra() {
		if acc, ok := ProjectAccession(s.Title); ok && projects[acc] {
			kept = append(kept, s)
		}
	}

	removed := cluster.NSpectra() - len(kept)
	if removed > 0 {
		cluster.SetSpectra(kept)
	}
	return removed
}
