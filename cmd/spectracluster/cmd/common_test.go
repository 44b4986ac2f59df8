package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
)

func TestReadIDList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("c1\n\n  c2  \nc1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readIDList(path)
	if err != nil {
		t.Fatalf("readIDList() error = %v", err)
	}

	want := map[string]bool{"c1": true, "c2": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("readIDList() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadIDListMissingFile(t *testing.T) {
	if _, err := readIDList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("readIDList() expected error for missing file")
	}
}

func TestAddFilterFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want filter.Config
	}{
		{
			name: "defaults",
			args: nil,
			want: filter.Config{
				MinSize:         2,
				MaxSize:         math.MaxInt,
				MaxRatio:        1,
				MaxIdentified:   math.MaxInt,
				MaxUnidentified: math.MaxInt,
			},
		},
		{
			name: "overrides",
			args: []string{"--min-size", "5", "--min-ratio", "0.7", "--max-unidentified", "3"},
			want: filter.Config{
				MinSize:         5,
				MaxSize:         math.MaxInt,
				MinRatio:        0.7,
				MaxRatio:        1,
				MaxIdentified:   math.MaxInt,
				MaxUnidentified: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaults := filter.DefaultConfig()
			defaults.MinSize = 2

			cmd := &cobra.Command{Use: "test"}
			cfg := addFilterFlags(cmd, defaults)

			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, *cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
			if defaults.MinSize != 2 {
				t.Errorf("defaults modified: MinSize = %d", defaults.MinSize)
			}
		})
	}
}

func TestCheckInput(t *testing.T) {
	if err := checkInput("-"); err != nil {
		t.Errorf("checkInput(-) error = %v", err)
	}
	if err := checkInput(filepath.Join(t.TempDir(), "missing.clustering")); err == nil {
		t.Error("checkInput() expected error for missing file")
	}
}
