// Package core provides the cluster, spectrum and PSM model produced by the
// .clustering parser, and the statistics derived from it.
package core

import (
	"sort"
	"strconv"
	"strings"
)

// Spectrum references one MS/MS scan that was assigned to a cluster.
type Spectrum struct {
	Title       string // raw title, may carry "#file=...#id=...#title=..."
	PrecursorMZ float64
	Charge      float64 // stored as measured
	TaxIDs      []string
	PSMs        []PSM // empty means unidentified

	// Reserved SPEC fields, kept verbatim so files can be written back.
	Flag  string
	Score string
	Extra []string // fields after the score, usually "key=value"
}

// NewSpectrum creates a spectrum. Duplicate and empty taxids as well as
// duplicate PSMs are dropped.
func NewSpectrum(title string, precursorMZ, charge float64, taxIDs []string, psms []PSM) *Spectrum {
	return &Spectrum{
		Title:       title,
		PrecursorMZ: precursorMZ,
		Charge:      charge,
		TaxIDs:      uniqueStrings(taxIDs),
		PSMs:        uniquePSMs(psms),
	}
}

// IsIdentified reports whether at least one PSM is attached.
func (s *Spectrum) IsIdentified() bool {
	return len(s.PSMs) > 0
}

// Filename returns the peak list filename from the composite title.
func (s *Spectrum) Filename() (string, bool) {
	return TitleFilename(s.Title)
}

// ID returns the spectrum id from the composite title.
func (s *Spectrum) ID() (string, bool) {
	return TitleID(s.Title)
}

// OriginalTitle returns the original title from the composite title, or
// the whole title if nothing was encoded.
func (s *Spectrum) OriginalTitle() string {
	return TitleOriginal(s.Title)
}

// CleanSequences returns the distinct clean sequences of all PSMs in PSM
// order.
func (s *Spectrum) CleanSequences() []string {
	var seqs []string
	seen := make(map[string]bool, len(s.PSMs))
	for _, p := range s.PSMs {
		seq := p.CleanSequence()
		if seen[seq] {
			continue
		}
		seen[seq] = true
		seqs = append(seqs, seq)
	}
	return seqs
}

// Property returns the value of a "key=value" entry in the trailing
// fields of the SPEC line.
func (s *Spectrum) Property(key string) (string, bool) {
	for _, field := range s.Extra {
		k, v, ok := strings.Cut(field, "=")
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

// Equal reports structural equality over title, precursor m/z, charge,
// taxids and PSMs. Reserved fields are not compared.
func (s *Spectrum) Equal(o *Spectrum) bool {
	return s.Key() == o.Key()
}

// Key returns a string that is identical for structurally equal spectra.
func (s *Spectrum) Key() string {
	taxIDs := append([]string(nil), s.TaxIDs...)
	sort.Strings(taxIDs)

	psms := make([]string, len(s.PSMs))
	for i, p := range s.PSMs {
		psms[i] = p.key()
	}
	sort.Strings(psms)

	return strings.Join([]string{
		s.Title,
		strconv.FormatFloat(s.PrecursorMZ, 'g', -1, 64),
		strconv.FormatFloat(s.Charge, 'g', -1, 64),
		strings.Join(taxIDs, "\x1e"),
		strings.Join(psms, "\x1d"),
	}, "\x00")
}

func uniqueStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
