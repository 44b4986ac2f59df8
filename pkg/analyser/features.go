package analyser

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

// SampleNameFunc derives the sample a spectrum was measured in.
type SampleNameFunc func(spectrum *core.Spectrum) string

// BasicSampleName returns the text after the first "." of the original
// title, or the whole title if it has no ".".
func BasicSampleName(spectrum *core.Spectrum) string {
	title := spectrum.OriginalTitle()
	if i := strings.Index(title, "."); i >= 0 {
		return title[i+1:]
	}
	return title
}

// FileSampleName returns the base name of the peak list file without its
// extensions. Spectra without a filename fall back to BasicSampleName.
func FileSampleName(spectrum *core.Spectrum) string {
	filename, ok := spectrum.Filename()
	if !ok || filename == "" {
		return BasicSampleName(spectrum)
	}

	base := filepath.Base(filepath.ToSlash(filename))
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// Features counts the spectra per sample in every cluster.
type Features struct {
	Filter     *filter.Config
	SampleName SampleNameFunc

	clusterIDs []string
	counts     []map[string]int
	samples    map[string]bool
}

// NewFeatures creates a Features analyser. A nil sampleName uses
// BasicSampleName.
func NewFeatures(sampleName SampleNameFunc) *Features {
	if sampleName == nil {
		sampleName = BasicSampleName
	}
	return &Features{
		SampleName: sampleName,
		samples:    make(map[string]bool),
	}
}

// ProcessCluster implements Processor.
func (f *Features) ProcessCluster(cluster *core.Cluster) error {
	if ignore(f.Filter, cluster) {
		return nil
	}

	perSample := make(map[string]int)
	for _, s := range cluster.Spectra() {
		sample := f.SampleName(s)
		f.samples[sample] = true
		perSample[sample]++
	}

	f.clusterIDs = append(f.clusterIDs, cluster.ID)
	f.counts = append(f.counts, perSample)
	return nil
}

// Samples returns all samples seen so far, sorted.
func (f *Features) Samples() []string {
	samples := make([]string, 0, len(f.samples))
	for s := range f.samples {
		samples = append(samples, s)
	}
	sort.Strings(samples)
	return samples
}

// Counts returns the spectra per sample of the i-th accepted cluster.
func (f *Features) Counts(i int) map[string]int {
	return f.counts[i]
}

// Len returns the number of accepted clusters.
func (f *Features) Len() int {
	return len(f.clusterIDs)
}

// Matrix returns the clusters x samples count table.
func (f *Features) Matrix() *table.Matrix {
	samples := f.Samples()

	values := make([][]int, len(f.clusterIDs))
	for i, perSample := range f.counts {
		row := make([]int, len(samples))
		for j, sample := range samples {
			row[j] = perSample[sample]
		}
		values[i] = row
	}

	return &table.Matrix{
		Corner:  "cluster_id",
		Columns: samples,
		Rows:    append([]string(nil), f.clusterIDs...),
		Values:  values,
	}
}
