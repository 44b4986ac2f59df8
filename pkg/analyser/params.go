package analyser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

// ParameterRow holds the basic parameters of one cluster. Missing values
// are NA.
type ParameterRow struct {
	ID                     string `csv:"id"`
	PrecursorMZ            string `csv:"precursor_mz"`
	Size                   int    `csv:"size"`
	Identified             int    `csv:"identified_spec_count"`
	Unidentified           int    `csv:"unidentified_spec_count"`
	MaxRatio               string `csv:"max_ratio"`
	MaxILRatio             string `csv:"max_il_ratio"`
	PrecursorMZRange       string `csv:"precursor_mz_range"`
	Sequences              string `csv:"sequences"`
	MaxSequence            string `csv:"max_sequence"`
	MaxSequenceCount       string `csv:"max_sequence_count"`
	MaxSequenceMods        string `csv:"max_sequence_mods"`
	SecondMaxSequence      string `csv:"second_max_sequence"`
	SecondMaxSequenceCount string `csv:"second_max_sequence_count"`
	SecondMaxSequenceMods  string `csv:"second_max_sequence_mods"`
	NInputFiles            string `csv:"n_input_files"`
	TheoreticalMZ          string `csv:"theoretical_mz"`
	DeltaMZ                string `csv:"delta_mz"`
}

// ParameterExtractor builds a ParameterRow for every accepted cluster.
type ParameterExtractor struct {
	Filter *filter.Config
	ModDB  *core.ModDatabase // nil uses core.DefaultModDatabase

	rows []ParameterRow
}

// NewParameterExtractor creates a ParameterExtractor.
func NewParameterExtractor(modDB *core.ModDatabase) *ParameterExtractor {
	return &ParameterExtractor{ModDB: modDB}
}

// ProcessCluster implements Processor.
func (e *ParameterExtractor) ProcessCluster(cluster *core.Cluster) error {
	if ignore(e.Filter, cluster) {
		return nil
	}
	e.rows = append(e.rows, e.Extract(cluster))
	return nil
}

// Rows returns the collected rows in input order.
func (e *ParameterExtractor) Rows() []ParameterRow {
	return e.rows
}

// Extract computes the parameters of a single cluster.
func (e *ParameterExtractor) Extract(cluster *core.Cluster) ParameterRow {
	maxRatio, ok := cluster.MaxRatio()
	maxILRatio, _ := cluster.MaxILRatio()

	row := ParameterRow{
		ID:                     cluster.ID,
		PrecursorMZ:            table.FormatFloat(cluster.PrecursorMZ),
		Size:                   cluster.NSpectra(),
		Identified:             cluster.IdentifiedSpectra(),
		Unidentified:           cluster.UnidentifiedSpectra(),
		MaxRatio:               table.FormatOptional(maxRatio, ok),
		MaxILRatio:             table.FormatOptional(maxILRatio, ok),
		PrecursorMZRange:       table.FormatFloat(cluster.PrecursorMZRange()),
		Sequences:              sequenceString(cluster.SequenceCounts()),
		MaxSequence:            table.NA,
		MaxSequenceCount:       table.NA,
		MaxSequenceMods:        table.NA,
		SecondMaxSequence:      table.NA,
		SecondMaxSequenceCount: table.NA,
		SecondMaxSequenceMods:  table.NA,
		NInputFiles:            table.NA,
		TheoreticalMZ:          table.NA,
		DeltaMZ:                table.NA,
	}

	counts := cluster.SequenceCounts()
	maxSequences := cluster.MaxSequences()

	if len(maxSequences) > 0 {
		psm := richestPSM(cluster, maxSequences[0])
		row.MaxSequence = psm.Sequence
		row.MaxSequenceCount = strconv.Itoa(countOf(counts, psm.Sequence))
		row.MaxSequenceMods = modsString(psm)

		if mz, err := core.TheoreticalMZ(psm, cluster.Charge(), e.ModDB); err == nil {
			row.TheoreticalMZ = strconv.FormatFloat(mz, 'f', 4, 64)
			row.DeltaMZ = strconv.FormatFloat(cluster.PrecursorMZ-mz, 'f', 4, 64)
		}
	}

	if second, count, found := secondSequence(counts, maxSequences); found {
		psm := richestPSM(cluster, second)
		row.SecondMaxSequence = second
		row.SecondMaxSequenceCount = strconv.Itoa(count)
		row.SecondMaxSequenceMods = modsString(psm)
	}

	if n := countInputFiles(cluster); n > 0 {
		row.NInputFiles = strconv.Itoa(n)
	}

	return row
}

// sequenceString renders counts as "[SEQ:count,SEQ:count]".
func sequenceString(counts []core.SequenceCount) string {
	parts := make([]string, len(counts))
	for i, sc := range counts {
		parts[i] = sc.Sequence + ":" + strconv.Itoa(sc.Count)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// secondSequence returns the runner-up sequence. With several max
// sequences this is the second one; otherwise the first sequence holding
// the second highest count.
func secondSequence(counts []core.SequenceCount, maxSequences []string) (string, int, bool) {
	if len(counts) < 2 {
		return "", 0, false
	}
	if len(maxSequences) > 1 {
		return maxSequences[1], countOf(counts, maxSequences[1]), true
	}

	best := -1
	for i, sc := range counts {
		if sc.Sequence == maxSequences[0] {
			continue
		}
		if best < 0 || sc.Count > counts[best].Count {
			best = i
		}
	}
	return counts[best].Sequence, counts[best].Count, true
}

func countOf(counts []core.SequenceCount, sequence string) int {
	for _, sc := range counts {
		if sc.Sequence == sequence {
			return sc.Count
		}
	}
	return 0
}

func modsString(psm core.PSM) string {
	if len(psm.PTMs) == 0 {
		return table.NA
	}
	ptms := append([]core.PTM(nil), psm.PTMs...)
	sort.SliceStable(ptms, func(i, j int) bool {
		return ptms[i].Position < ptms[j].Position
	})
	return core.FormatPTMs(ptms)
}

func countInputFiles(cluster *core.Cluster) int {
	files := make(map[string]bool)
	for _, s := range cluster.Spectra() {
		if filename, ok := s.Filename(); ok && filename != "" {
			files[filename] = true
		}
	}
	return len(files)
}
