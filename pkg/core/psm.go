package core

import (
	"sort"
	"strings"
)

// PSM is a peptide-spectrum match: a candidate sequence with its PTMs.
type PSM struct {
	Sequence string // raw, may contain lower case or annotation characters
	PTMs     []PTM
}

// NewPSM creates a PSM. Duplicate PTMs are dropped.
func NewPSM(sequence string, ptms []PTM) PSM {
	return PSM{Sequence: sequence, PTMs: uniquePTMs(ptms)}
}

// CleanSequence upper-cases the raw sequence and strips every character
// outside A-Z. This is the form used for all statistics.
func (p PSM) CleanSequence() string {
	return CleanSequence(p.Sequence)
}

// CleanSequence returns s upper-cased with all non A-Z characters removed.
func CleanSequence(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String renders the clean sequence with "[accession]" inserted at
// character offset Position: 0 is before the first residue, len(sequence)
// after the last one. Out of range positions are clamped.
func (p PSM) String() string {
	seq := p.CleanSequence()
	if len(p.PTMs) == 0 {
		return seq
	}

	ptms := make([]PTM, len(p.PTMs))
	copy(ptms, p.PTMs)
	sort.SliceStable(ptms, func(i, j int) bool {
		return ptms[i].Position < ptms[j].Position
	})

	var b strings.Builder
	next := 0
	for _, ptm := range ptms {
		pos := ptm.Position
		if pos < 0 {
			pos = 0
		}
		if pos > len(seq) {
			pos = len(seq)
		}
		b.WriteString(seq[next:pos])
		next = pos
		b.WriteString("[" + ptm.Accession + "]")
	}
	b.WriteString(seq[next:])

	return b.String()
}

// Equal reports structural equality over sequence and PTM set.
func (p PSM) Equal(o PSM) bool {
	return p.key() == o.key()
}

// key is order independent over the PTM set.
func (p PSM) key() string {
	tokens := make([]string, len(p.PTMs))
	for i, ptm := range p.PTMs {
		tokens[i] = ptm.String()
	}
	sort.Strings(tokens)
	return p.Sequence + "\x1f" + strings.Join(tokens, "\x1e")
}

func uniquePSMs(psms []PSM) []PSM {
	if len(psms) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(psms))
	out := make([]PSM, 0, len(psms))
	for _, p := range psms {
		p.PTMs = uniquePTMs(p.PTMs)
		k := p.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
