package analyser

import (
	"errors"
	"iter"
	"testing"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/google/go-cmp/cmp"
)

// spec creates a spectrum with one PSM per sequence.
func spec(title string, sequences ...string) *core.Spectrum {
	psms := make([]core.PSM, len(sequences))
	for i, seq := range sequences {
		psms[i] = core.NewPSM(seq, nil)
	}
	return core.NewSpectrum(title, 400, 2, []string{"9606"}, psms)
}

func modified(title, sequence, ptms string) *core.Spectrum {
	parsed, err := core.ParsePTMs(ptms)
	if err != nil {
		panic(err)
	}
	return core.NewSpectrum(title, 400, 2, nil, []core.PSM{core.NewPSM(sequence, parsed)})
}

func cluster(id string, spectra ...*core.Spectrum) *core.Cluster {
	return core.NewCluster(id, 400, nil, nil, spectra)
}

func clusters(list ...*core.Cluster) iter.Seq2[*core.Cluster, error] {
	return func(yield func(*core.Cluster, error) bool) {
		for _, c := range list {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func TestRun(t *testing.T) {
	input := clusters(
		cluster("c1", spec("a", "PEPTIDE")),
		cluster("c2", spec("b")),
	)

	var seen []string
	record := ProcessorFunc(func(c *core.Cluster) error {
		seen = append(seen, c.ID)
		return nil
	})

	n, err := Run(input, record, record)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 clusters, got %d", n)
	}
	if diff := cmp.Diff([]string{"c1", "c1", "c2", "c2"}, seen); diff != "" {
		t.Errorf("Processing order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStopsOnError(t *testing.T) {
	readErr := errors.New("read failed")
	input := func(yield func(*core.Cluster, error) bool) {
		if !yield(cluster("c1", spec("a")), nil) {
			return
		}
		yield(nil, readErr)
	}

	calls := 0
	n, err := Run(input, ProcessorFunc(func(*core.Cluster) error {
		calls++
		return nil
	}))
	if !errors.Is(err, readErr) {
		t.Fatalf("Expected read error, got %v", err)
	}
	if n != 1 || calls != 1 {
		t.Errorf("Expected 1 cluster processed, got n=%d calls=%d", n, calls)
	}

	procErr := errors.New("process failed")
	_, err = Run(clusters(cluster("c1", spec("a")), cluster("c2", spec("b"))),
		ProcessorFunc(func(*core.Cluster) error { return procErr }))
	if !errors.Is(err, procErr) {
		t.Errorf("Expected processor error, got %v", err)
	}
}

func TestFiltered(t *testing.T) {
	cfg := filter.DefaultConfig()
	cfg.MinSize = 2

	var seen []string
	p := Filtered(cfg, ProcessorFunc(func(c *core.Cluster) error {
		seen = append(seen, c.ID)
		return nil
	}))

	if _, err := Run(clusters(
		cluster("small", spec("a")),
		cluster("large", spec("a"), spec("b")),
	), p); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"large"}, seen); diff != "" {
		t.Errorf("Filtered() mismatch (-want +got):\n%s", diff)
	}

	// nil config accepts everything
	seen = nil
	Filtered(nil, ProcessorFunc(func(c *core.Cluster) error {
		seen = append(seen, c.ID)
		return nil
	})).ProcessCluster(cluster("small", spec("a")))
	if len(seen) != 1 {
		t.Errorf("Expected nil filter to accept, got %v", seen)
	}
}
