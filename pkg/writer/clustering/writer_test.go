package clustering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	reader "github.com/ChrisMcGann/SpectraCluster/pkg/reader/clustering"
	"github.com/google/go-cmp/cmp"
)

func testClusters(t *testing.T) []*core.Cluster {
	t.Helper()

	ptms, err := core.ParsePTMs("3-MOD:00719,4-MOD:00696")
	if err != nil {
		t.Fatal(err)
	}

	identified := core.NewSpectrum(core.EncodeTitle("a.mgf", "index=1", "PRD000001;a.xml;spectrum=1"),
		359.1, 2, []string{"9606", "10090"},
		[]core.PSM{core.NewPSM("PEPTIDEK", nil), core.NewPSM("PEPTLDEK", ptms)})
	identified.Extra = []string{"RT=1234.5"}

	unidentified := core.NewSpectrum("b", 359.2, 3, nil, nil)
	unidentified.Flag = "false"
	unidentified.Score = "0.5"

	return []*core.Cluster{
		core.NewCluster("c1", 359.155, []float64{100.5, 200.25}, []float64{10, 20.5},
			[]*core.Spectrum{identified, unidentified}),
		core.NewCluster("c2", 400, nil, nil, []*core.Spectrum{core.NewSpectrum("c", 400, 2, nil, nil)}),
	}
}

func TestWriteCluster(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteCluster(testClusters(t)[0]); err != nil {
		t.Fatalf("WriteCluster() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"=Cluster=",
		"id=c1",
		"av_precursor_mz=359.155",
		"av_precursor_intens=1.0",
		"consensus_mz=100.5,200.25",
		"consensus_intens=10,20.5",
		"SPEC\t#file=a.mgf#id=index=1#title=PRD000001;a.xml;spectrum=1\ttrue\tPEPTIDEK,PEPTLDEK\t359.1\t2\t9606,10090\t;3-MOD:00719,4-MOD:00696\t0.0\tRT=1234.5",
		"SPEC\tb\tfalse\t\t359.2\t3\t\t\t0.5",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteCluster() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	clusters := testClusters(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, c := range clusters {
		if err := w.ProcessCluster(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if w.Count() != 2 {
		t.Errorf("Expected 2 clusters written, got %d", w.Count())
	}

	r := reader.NewReader(&buf)
	var got []*core.Cluster
	for r.Next() {
		got = append(got, r.Cluster())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("reading written clusters: %v", err)
	}

	if len(got) != len(clusters) {
		t.Fatalf("Expected %d clusters, got %d", len(clusters), len(got))
	}
	for i := range clusters {
		want, have := clusters[i], got[i]
		if want.ID != have.ID || want.PrecursorMZ != have.PrecursorMZ {
			t.Errorf("Cluster %d header mismatch: %s/%v vs %s/%v", i, want.ID, want.PrecursorMZ, have.ID, have.PrecursorMZ)
		}
		if diff := cmp.Diff(want.ConsensusMZ, have.ConsensusMZ); diff != "" {
			t.Errorf("Cluster %d consensus m/z mismatch (-want +got):\n%s", i, diff)
		}
		if want.NSpectra() != have.NSpectra() {
			t.Fatalf("Cluster %d: expected %d spectra, got %d", i, want.NSpectra(), have.NSpectra())
		}
		for j, s := range want.Spectra() {
			if !s.Equal(have.Spectra()[j]) {
				t.Errorf("Cluster %d spectrum %d differs after round trip: %+v vs %+v", i, j, s, have.Spectra()[j])
			}
		}
		if diff := cmp.Diff(want.SequenceCounts(), have.SequenceCounts()); diff != "" {
			t.Errorf("Cluster %d statistics differ (-want +got):\n%s", i, diff)
		}
	}

	if v, ok := got[0].Spectra()[0].Property("RT"); !ok || v != "1234.5" {
		t.Errorf("Expected RT property to survive, got %q %v", v, ok)
	}
}
