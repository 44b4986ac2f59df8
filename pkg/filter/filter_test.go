package filter

import (
	"math"
	"testing"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
)

func testCluster(sequences ...string) *core.Cluster {
	spectra := make([]*core.Spectrum, len(sequences))
	for i, seq := range sequences {
		var psms []core.PSM
		if seq != "" {
			psms = []core.PSM{core.NewPSM(seq, nil)}
		}
		spectra[i] = core.NewSpectrum(string(rune('a'+i)), 500, 2, nil, psms)
	}
	return core.NewCluster("c1", 500, nil, nil, spectra)
}

func TestConfigIgnore(t *testing.T) {
	// 3 identified (ratio 2/3), 1 unidentified
	mixed := testCluster("PEPTIDE", "PEPTIDE", "MEGIGLK", "")
	// no identified spectra, so no ratio
	empty := testCluster("", "")

	tests := []struct {
		name    string
		modify  func(c *Config)
		cluster *core.Cluster
		want    bool
	}{
		{name: "defaults accept", modify: func(c *Config) {}, cluster: mixed, want: false},
		{name: "defaults accept unidentified", modify: func(c *Config) {}, cluster: empty, want: false},
		{name: "size below minimum", modify: func(c *Config) { c.MinSize = 5 }, cluster: mixed, want: true},
		{name: "size at minimum", modify: func(c *Config) { c.MinSize = 4 }, cluster: mixed, want: false},
		{name: "size above maximum", modify: func(c *Config) { c.MaxSize = 3 }, cluster: mixed, want: true},
		{name: "ratio below minimum", modify: func(c *Config) { c.MinRatio = 0.7 }, cluster: mixed, want: true},
		{name: "ratio above maximum", modify: func(c *Config) { c.MaxRatio = 0.5 }, cluster: mixed, want: true},
		{name: "ratio inside range", modify: func(c *Config) { c.MinRatio = 0.5; c.MaxRatio = 0.7 }, cluster: mixed, want: false},
		{name: "missing ratio with min ratio", modify: func(c *Config) { c.MinRatio = 0.1 }, cluster: empty, want: true},
		{name: "missing ratio with max ratio", modify: func(c *Config) { c.MaxRatio = 0.9 }, cluster: empty, want: true},
		{name: "too few identified", modify: func(c *Config) { c.MinIdentified = 4 }, cluster: mixed, want: true},
		{name: "too many identified", modify: func(c *Config) { c.MaxIdentified = 2 }, cluster: mixed, want: true},
		{name: "too few unidentified", modify: func(c *Config) { c.MinUnidentified = 2 }, cluster: mixed, want: true},
		{name: "too many unidentified", modify: func(c *Config) { c.MaxUnidentified = 0 }, cluster: mixed, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			if got := cfg.Ignore(tt.cluster); got != tt.want {
				t.Errorf("Ignore() = %v, want %v", got, tt.want)
			}
			if got := cfg.Accept(tt.cluster); got == tt.want {
				t.Errorf("Accept() = %v, want %v", got, !tt.want)
			}
		})
	}
}

func TestConfigUsesILRatio(t *testing.T) {
	// Distinct sequences, identical after I/L collapse
	c := testCluster("PEPTIDE", "PEPTLDE")

	cfg := DefaultConfig()
	cfg.MinRatio = 1

	if cfg.Ignore(c) {
		ratio, _ := c.MaxILRatio()
		t.Errorf("Expected cluster with I/L ratio %f to be accepted", ratio)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "negative size", modify: func(c *Config) { c.MinSize = -1 }, wantErr: true},
		{name: "inverted size", modify: func(c *Config) { c.MinSize = 10; c.MaxSize = 5 }, wantErr: true},
		{name: "ratio above one", modify: func(c *Config) { c.MaxRatio = 1.5 }, wantErr: true},
		{name: "inverted ratio", modify: func(c *Config) { c.MinRatio = 0.8; c.MaxRatio = 0.2 }, wantErr: true},
		{name: "inverted identified", modify: func(c *Config) { c.MinIdentified = 3; c.MaxIdentified = 1 }, wantErr: true},
		{name: "inverted unidentified", modify: func(c *Config) { c.MinUnidentified = math.MaxInt; c.MaxUnidentified = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
