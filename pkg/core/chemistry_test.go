package core

import (
	"math"
	"testing"
)

func TestCalculateNeutralMass(t *testing.T) {
	tests := []struct {
		name      string
		sequence  string
		modMasses []float64
		wantMass  float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "simple tripeptide",
			sequence:  "AAA",
			wantMass:  231.121, // Approximate neutral mass
			tolerance: 0.1,
		},
		{
			name:      "with modification",
			sequence:  "AAA",
			modMasses: []float64{57.021464},
			wantMass:  288.143, // Approximate
			tolerance: 0.1,
		},
		{
			name:     "unknown residue",
			sequence: "PEPXIDE",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateNeutralMass(tt.sequence, tt.modMasses)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CalculateNeutralMass() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.wantMass) > tt.tolerance {
				t.Errorf("CalculateNeutralMass() = %.3f, want %.3f (within %.3f)", got, tt.wantMass, tt.tolerance)
			}
		})
	}
}

func TestTheoreticalMZ(t *testing.T) {
	db := DefaultModDatabase()

	tests := []struct {
		name      string
		psm       PSM
		charge    int
		wantMZ    float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "simple peptide charge 1",
			psm:       NewPSM("AAA", nil),
			charge:    1,
			wantMZ:    232.129, // Approximate
			tolerance: 0.1,
		},
		{
			name:      "simple peptide charge 2",
			psm:       NewPSM("AAA", nil),
			charge:    2,
			wantMZ:    116.569, // Approximate
			tolerance: 0.1,
		},
		{
			name:      "lower case sequence is cleaned",
			psm:       NewPSM("aAa", nil),
			charge:    1,
			wantMZ:    232.129,
			tolerance: 0.1,
		},
		{
			name:      "carbamidomethyl",
			psm:       NewPSM("AAA", []PTM{{Position: 1, Accession: "UNIMOD:4"}}),
			charge:    1,
			wantMZ:    289.150,
			tolerance: 0.1,
		},
		{
			name:    "unknown accession",
			psm:     NewPSM("AAA", []PTM{{Position: 1, Accession: "MOD:99999"}}),
			charge:  1,
			wantErr: true,
		},
		{
			name:    "zero charge",
			psm:     NewPSM("AAA", nil),
			charge:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TheoreticalMZ(tt.psm, tt.charge, db)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TheoreticalMZ() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.wantMZ) > tt.tolerance {
				t.Errorf("TheoreticalMZ() = %.3f, want %.3f (within %.3f)", got, tt.wantMZ, tt.tolerance)
			}
		})
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		precision int
		want      float64
	}{
		{"round to 2 decimals", 3.14159, 2, 3.14},
		{"round to 4 decimals", 3.14159, 4, 3.1416},
		{"round to 0 decimals", 3.6, 0, 4.0},
		{"round negative", -3.14159, 2, -3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundFloat(tt.val, tt.precision)
			if got != tt.want {
				t.Errorf("RoundFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}
