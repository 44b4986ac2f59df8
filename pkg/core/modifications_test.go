package core

import (
	"strings"
	"testing"
)

func TestModDatabaseLoadFromCSV(t *testing.T) {
	db := NewModDatabase()
	csv := "accession,mass\nMOD:01234,12.5\n\nUNIMOD:999,-1.25,extra\n"

	if err := db.LoadFromCSV(strings.NewReader(csv)); err != nil {
		t.Fatalf("LoadFromCSV() error = %v", err)
	}
	if db.Len() != 2 {
		t.Fatalf("Expected 2 modifications, got %d", db.Len())
	}

	mass, ok := db.GetMass("UNIMOD:999")
	if !ok || mass != -1.25 {
		t.Errorf("Expected UNIMOD:999 = -1.25, got %v (found %v)", mass, ok)
	}
}

func TestModDatabaseLoadFromCSVInvalid(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing mass", "accession,mass\nMOD:01234\n"},
		{"bad mass", "accession,mass\nMOD:01234,heavy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewModDatabase().LoadFromCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestModDatabaseResolve(t *testing.T) {
	db := DefaultModDatabase()

	masses, err := db.Resolve([]PTM{{Position: 3, Accession: "MOD:00397"}, {Position: 5, Accession: "UNIMOD:35"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(masses) != 2 || masses[0] != 57.021464 || masses[1] != 15.994915 {
		t.Errorf("Unexpected masses %v", masses)
	}

	if _, err := db.Resolve([]PTM{{Position: 1, Accession: "MOD:1234"}}); err == nil {
		t.Error("Expected an error for an unknown accession")
	}
}
