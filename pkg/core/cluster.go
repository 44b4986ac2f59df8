package core

import (
	"fmt"
	"math"
	"strings"
)

// SequenceCount is the number of identified spectra carrying a sequence.
type SequenceCount struct {
	Sequence string
	Count    int
}

// Cluster is one block of a .clustering file: a consensus spectrum and the
// spectra grouped under it. The derived statistics are rebuilt by
// SetSpectra and are read-only otherwise.
type Cluster struct {
	ID              string
	PrecursorMZ     float64
	ConsensusMZ     []float64
	ConsensusIntens []float64

	spectra      []*Spectrum
	identified   int
	unidentified int

	sequenceCounts   []SequenceCount
	ilSequenceCounts []SequenceCount
	sequenceRatios   map[string]float64
	maxRatio         float64
	maxILRatio       float64
	maxSequences     []string
}

// NewCluster creates a cluster and computes its statistics.
func NewCluster(id string, precursorMZ float64, consensusMZ, consensusIntens []float64, spectra []*Spectrum) *Cluster {
	c := &Cluster{
		ID:              id,
		PrecursorMZ:     precursorMZ,
		ConsensusMZ:     consensusMZ,
		ConsensusIntens: consensusIntens,
	}
	c.SetSpectra(spectra)
	return c
}

// SetSpectra replaces the cluster's spectra and rebuilds all derived
// statistics. Structurally equal spectra are kept once. It must not be
// called concurrently with any other method.
func (c *Cluster) SetSpectra(spectra []*Spectrum) {
	seen := make(map[string]bool, len(spectra))
	c.spectra = make([]*Spectrum, 0, len(spectra))
	for _, s := range spectra {
		if s == nil {
			continue
		}
		k := s.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		c.spectra = append(c.spectra, s)
	}
	c.rebuild()
}

func (c *Cluster) rebuild() {
	c.identified = 0
	c.unidentified = 0
	for _, s := range c.spectra {
		if s.IsIdentified() {
			c.identified++
		} else {
			c.unidentified++
		}
	}

	c.sequenceCounts = nil
	c.ilSequenceCounts = nil
	c.sequenceRatios = nil
	c.maxRatio = 0
	c.maxILRatio = 0
	c.maxSequences = nil

	if c.identified == 0 {
		return
	}

	c.sequenceCounts = countSequences(c.spectra, false)
	c.ilSequenceCounts = countSequences(c.spectra, true)

	c.sequenceRatios = make(map[string]float64, len(c.sequenceCounts))
	for _, sc := range c.sequenceCounts {
		c.sequenceRatios[sc.Sequence] = float64(sc.Count) / float64(c.identified)
	}

	var maxCount int
	c.maxSequences, maxCount = maxSequences(c.sequenceCounts)
	c.maxRatio = float64(maxCount) / float64(c.identified)

	_, maxILCount := maxSequences(c.ilSequenceCounts)
	c.maxILRatio = float64(maxILCount) / float64(c.identified)
}

// countSequences counts, per clean sequence, the identified spectra that
// carry it. With ignoreIL every I is replaced by L first. The result is in
// order of first occurrence.
func countSequences(spectra []*Spectrum, ignoreIL bool) []SequenceCount {
	var counts []SequenceCount
	index := make(map[string]int)

	for _, s := range spectra {
		if !s.IsIdentified() {
			continue
		}

		seen := make(map[string]bool, len(s.PSMs))
		for _, seq := range s.CleanSequences() {
			if ignoreIL {
				seq = strings.ReplaceAll(seq, "I", "L")
			}
			if seen[seq] {
				continue
			}
			seen[seq] = true

			if i, ok := index[seq]; ok {
				counts[i].Count++
				continue
			}
			index[seq] = len(counts)
			counts = append(counts, SequenceCount{Sequence: seq, Count: 1})
		}
	}

	return counts
}

// maxSequences returns all sequences tied at the highest count.
func maxSequences(counts []SequenceCount) ([]string, int) {
	maxCount := 0
	for _, sc := range counts {
		if sc.Count > maxCount {
			maxCount = sc.Count
		}
	}

	var seqs []string
	for _, sc := range counts {
		if sc.Count == maxCount {
			seqs = append(seqs, sc.Sequence)
		}
	}
	return seqs, maxCount
}

// Spectra returns the cluster's spectra. The slice must not be modified.
func (c *Cluster) Spectra() []*Spectrum {
	return c.spectra
}

// NSpectra returns the number of spectra in the cluster.
func (c *Cluster) NSpectra() int {
	return len(c.spectra)
}

// IdentifiedSpectra returns the number of spectra with at least one PSM.
func (c *Cluster) IdentifiedSpectra() int {
	return c.identified
}

// UnidentifiedSpectra returns the number of spectra without PSMs.
func (c *Cluster) UnidentifiedSpectra() int {
	return c.unidentified
}

// SequenceCounts returns the per sequence spectrum counts in order of
// first occurrence. It is nil if no spectrum is identified.
func (c *Cluster) SequenceCounts() []SequenceCount {
	return c.sequenceCounts
}

// ILSequenceCounts is SequenceCounts with I and L treated as one residue.
func (c *Cluster) ILSequenceCounts() []SequenceCount {
	return c.ilSequenceCounts
}

// SequenceRatios maps each clean sequence to the fraction of identified
// spectra carrying it. It is nil if no spectrum is identified.
func (c *Cluster) SequenceRatios() map[string]float64 {
	return c.sequenceRatios
}

// MaxRatio returns the highest sequence ratio. ok is false if no
// spectrum is identified.
func (c *Cluster) MaxRatio() (ratio float64, ok bool) {
	return c.maxRatio, c.identified > 0
}

// MaxILRatio returns the highest sequence ratio after collapsing I and L.
// It is never below MaxRatio.
func (c *Cluster) MaxILRatio() (ratio float64, ok bool) {
	return c.maxILRatio, c.identified > 0
}

// MaxSequences returns every sequence reaching MaxRatio. The order is not
// meaningful.
func (c *Cluster) MaxSequences() []string {
	return c.maxSequences
}

// Charge returns the most common rounded spectrum charge, preferring the
// lowest charge on ties, or 0 for an empty cluster.
func (c *Cluster) Charge() int {
	counts := make(map[int]int)
	for _, s := range c.spectra {
		counts[int(math.Round(s.Charge))]++
	}

	charge, best := 0, 0
	for z, n := range counts {
		if n > best || (n == best && z < charge) {
			charge, best = z, n
		}
	}
	return charge
}

// PrecursorMZRange returns the spread of the spectra's precursor m/z.
func (c *Cluster) PrecursorMZRange() float64 {
	if len(c.spectra) == 0 {
		return 0
	}

	low, high := math.Inf(1), math.Inf(-1)
	for _, s := range c.spectra {
		low = math.Min(low, s.PrecursorMZ)
		high = math.Max(high, s.PrecursorMZ)
	}
	return high - low
}

// Validate checks the consensus spectrum.
func (c *Cluster) Validate() error {
	var errs []string

	if c.ID == "" {
		errs = append(errs, "id is required")
	}
	if len(c.ConsensusMZ) != len(c.ConsensusIntens) {
		errs = append(errs, fmt.Sprintf("%d consensus m/z values but %d intensities",
			len(c.ConsensusMZ), len(c.ConsensusIntens)))
	}
	for i, mz := range c.ConsensusMZ {
		if math.IsNaN(mz) || math.IsInf(mz, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid m/z", i))
		}
	}
	for i, intens := range c.ConsensusIntens {
		if math.IsNaN(intens) || math.IsInf(intens, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid intensity", i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Cluster " + c.ID,
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}
