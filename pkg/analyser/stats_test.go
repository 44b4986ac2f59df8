package analyser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatsCollector(t *testing.T) {
	s := NewStatsCollector("run.clustering", 3)

	input := clusters(
		// evaluated: 3 of 4 identified agree (I/L agnostic)
		cluster("c1", spec("a", "PEPTIDE"), spec("b", "PEPTLDE"), spec("c", "PEPTIDE"), spec("d", "AAAK"), spec("e")),
		// too few identified spectra
		cluster("c2", spec("f", "MEGIGLK"), spec("g", "MEGIGLK"), spec("h")),
		cluster("c3", spec("i")),
	)
	if _, err := Run(input, s); err != nil {
		t.Fatal(err)
	}

	want := ClusteringStatistics{
		Filename:                   "run.clustering",
		MinSize:                    3,
		TotalClusters:              3,
		TotalSpectra:               9,
		IdentifiedSpectra:          6,
		ClusteredSpectra:           5,
		ClusteredIdentifiedSpectra: 4,
		CorrectSpectra:             3,
		IncorrectSpectra:           1,
		MinSizedClusters:           1,
	}
	if diff := cmp.Diff(want, s.Result()); diff != "" {
		t.Errorf("Result() mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsCollectorZeroMinSize(t *testing.T) {
	s := NewStatsCollector("x", 0)
	if err := s.ProcessCluster(cluster("c", spec("a"))); err != nil {
		t.Fatal(err)
	}

	got := s.Result()
	if got.MinSizedClusters != 0 || got.TotalClusters != 1 {
		t.Errorf("Expected unidentified cluster to be counted but not evaluated, got %+v", got)
	}
}
