package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ModDatabase maps modification accessions to mass shifts.
type ModDatabase struct {
	mods map[string]float64 // accession -> mass shift
}

// NewModDatabase creates an empty modification database
func NewModDatabase() *ModDatabase {
	return &ModDatabase{
		mods: make(map[string]float64),
	}
}

// LoadFromCSV loads modifications from a CSV file (format: accession,massshift[,...]).
// The first line is a header.
func (db *ModDatabase) LoadFromCSV(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	// Skip header line
	scanner.Scan()

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return fmt.Errorf("line %d: invalid format, expected at least 2 comma-separated fields", lineNum)
		}

		accession := strings.TrimSpace(parts[0])
		massStr := strings.TrimSpace(parts[1])

		mass, err := strconv.ParseFloat(massStr, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid mass value '%s': %w", lineNum, massStr, err)
		}

		db.mods[accession] = mass
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading CSV: %w", err)
	}

	return nil
}

// GetMass returns the mass shift for an accession
func (db *ModDatabase) GetMass(accession string) (float64, bool) {
	mass, ok := db.mods[accession]
	return mass, ok
}

// Add adds or updates a modification
func (db *ModDatabase) Add(accession string, mass float64) {
	db.mods[accession] = mass
}

// Len returns the number of known accessions.
func (db *ModDatabase) Len() int {
	return len(db.mods)
}

// Resolve returns the mass shift of every PTM, failing on the first
// unknown accession.
func (db *ModDatabase) Resolve(ptms []PTM) ([]float64, error) {
	masses := make([]float64, 0, len(ptms))
	for _, ptm := range ptms {
		mass, ok := db.GetMass(ptm.Accession)
		if !ok {
			return nil, fmt.Errorf("unknown modification '%s'", ptm.Accession)
		}
		masses = append(masses, mass)
	}
	return masses, nil
}

// DefaultModDatabase returns a ModDatabase pre-loaded with common PSI-MOD
// and UNIMOD accessions.
func DefaultModDatabase() *ModDatabase {
	db := NewModDatabase()

	// PSI-MOD
	db.Add("MOD:00040", -17.026549) // pyroglutamic acid from Gln
	db.Add("MOD:00394", 42.010565)  // acetylated residue
	db.Add("MOD:00397", 57.021464)  // iodoacetamide derivatized residue
	db.Add("MOD:00400", 0.984016)   // deamidated residue
	db.Add("MOD:00420", -18.010565) // pyroglutamic acid from Glu
	db.Add("MOD:00425", 15.994915)  // monohydroxylated residue
	db.Add("MOD:00427", 14.01565)   // methylated residue
	db.Add("MOD:00429", 28.0313)    // dimethylated residue
	db.Add("MOD:00430", 42.04695)   // trimethylated residue
	db.Add("MOD:00696", 79.966331)  // phosphorylated residue
	db.Add("MOD:00719", 15.994915)  // L-methionine sulfoxide

	// UNIMOD
	db.Add("UNIMOD:1", 42.010565)     // Acetyl
	db.Add("UNIMOD:4", 57.021464)     // Carbamidomethyl
	db.Add("UNIMOD:5", 43.005814)     // Carbamyl
	db.Add("UNIMOD:7", 0.984016)      // Deamidated
	db.Add("UNIMOD:21", 79.966331)    // Phospho
	db.Add("UNIMOD:27", -18.010565)   // Glu->pyro-Glu
	db.Add("UNIMOD:28", -17.026549)   // Gln->pyro-Glu
	db.Add("UNIMOD:34", 14.01565)     // Methyl
	db.Add("UNIMOD:35", 15.994915)    // Oxidation
	db.Add("UNIMOD:36", 28.0313)      // Dimethyl
	db.Add("UNIMOD:37", 42.04695)     // Trimethyl
	db.Add("UNIMOD:214", 144.102063)  // iTRAQ4plex
	db.Add("UNIMOD:730", 304.205360)  // iTRAQ8plex
	db.Add("UNIMOD:737", 229.162932)  // TMT6plex
	db.Add("UNIMOD:2016", 304.207146) // TMTpro

	return db
}
