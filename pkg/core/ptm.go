package core

import (
	"strconv"
	"strings"
)

// PTM is a post-translational modification placed within a peptide.
type PTM struct {
	Position  int    // 1-based residue index; 0 = N-terminus, len(sequence) = C-terminus
	Accession string // e.g. "MOD:00397" or "UNIMOD:4"
}

// String returns the .clustering token form "position-accession".
func (p PTM) String() string {
	return strconv.Itoa(p.Position) + "-" + p.Accession
}

// ParsePTMs parses a comma separated list of "position-accession" tokens.
// The accession may itself contain '-', so each token is split on the
// first '-' only. Commas inside a bracketed PSI-MS descriptor such as
// "[MS, MS:1001460, unknown modification, ]" do not separate tokens.
func ParsePTMs(s string) ([]PTM, error) {
	if s == "" {
		return nil, nil
	}

	tokens := splitPTMTokens(s)
	ptms := make([]PTM, 0, len(tokens))

	for _, token := range tokens {
		parts := strings.SplitN(token, "-", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, &FormatError{Msg: "invalid PTM definition", Content: token}
		}

		pos, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, &FormatError{Msg: "invalid PTM position", Content: token, Err: err}
		}

		ptms = append(ptms, PTM{Position: pos, Accession: parts[1]})
	}

	return ptms, nil
}

// splitPTMTokens splits s on commas outside of square brackets.
func splitPTMTokens(s string) []string {
	var tokens []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, s[start:i])
				start = i + 1
			}
		}
	}
	return append(tokens, s[start:])
}

// FormatPTMs is the inverse of ParsePTMs.
func FormatPTMs(ptms []PTM) string {
	if len(ptms) == 0 {
		return ""
	}

	parts := make([]string, len(ptms))
	for i, p := range ptms {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

// uniquePTMs drops structural duplicates, keeping first occurrences.
func uniquePTMs(ptms []PTM) []PTM {
	if len(ptms) == 0 {
		return nil
	}

	seen := make(map[PTM]bool, len(ptms))
	out := make([]PTM, 0, len(ptms))
	for _, p := range ptms {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
