// Package filter provides the cluster inclusion predicate shared by all
// tools, and peak filters for consensus spectra.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
)

// Config holds inclusive cluster filtering ranges
type Config struct {
	MinSize         int     // Minimum number of spectra
	MaxSize         int     // Maximum number of spectra
	MinRatio        float64 // Minimum I/L agnostic max ratio
	MaxRatio        float64 // Maximum I/L agnostic max ratio
	MinIdentified   int     // Minimum identified spectra
	MaxIdentified   int     // Maximum identified spectra
	MinUnidentified int     // Minimum unidentified spectra
	MaxUnidentified int     // Maximum unidentified spectra
}

// DefaultConfig returns a Config that accepts every cluster.
func DefaultConfig() *Config {
	return &Config{
		MaxSize:         math.MaxInt,
		MaxRatio:        1,
		MaxIdentified:   math.MaxInt,
		MaxUnidentified: math.MaxInt,
	}
}

// Accept reports whether the cluster lies within all configured ranges.
// A cluster without identified spectra has no ratio; it is only accepted
// when the ratio range is left at its default [0, 1].
func (c *Config) Accept(cluster *core.Cluster) bool {
	return !c.Ignore(cluster)
}

// Ignore is the negation of Accept.
func (c *Config) Ignore(cluster *core.Cluster) bool {
	n := cluster.NSpectra()
	if n < c.MinSize || n > c.MaxSize {
		return true
	}

	ratio, ok := cluster.MaxILRatio()
	if !ok && (c.MinRatio > 0 || c.MaxRatio < 1) {
		return true
	}
	if ok && (ratio < c.MinRatio || ratio > c.MaxRatio) {
		return true
	}

	identified := cluster.IdentifiedSpectra()
	if identified < c.MinIdentified || identified > c.MaxIdentified {
		return true
	}

	unidentified := cluster.UnidentifiedSpectra()
	if unidentified < c.MinUnidentified || unidentified > c.MaxUnidentified {
		return true
	}

	return false
}

// Validate checks that every range is well formed.
func (c *Config) Validate() error {
	var errs []string

	if c.MinSize < 0 || c.MinSize > c.MaxSize {
		errs = append(errs, fmt.Sprintf("invalid size range [%d, %d]", c.MinSize, c.MaxSize))
	}
	if c.MinRatio < 0 || c.MaxRatio > 1 || c.MinRatio > c.MaxRatio {
		errs = append(errs, fmt.Sprintf("invalid ratio range [%g, %g]", c.MinRatio, c.MaxRatio))
	}
	if c.MinIdentified < 0 || c.MinIdentified > c.MaxIdentified {
		errs = append(errs, fmt.Sprintf("invalid identified range [%d, %d]", c.MinIdentified, c.MaxIdentified))
	}
	if c.MinUnidentified < 0 || c.MinUnidentified > c.MaxUnidentified {
		errs = append(errs, fmt.Sprintf("invalid unidentified range [%d, %d]", c.MinUnidentified, c.MaxUnidentified))
	}

	if len(errs) > 0 {
		return &core.ValidationError{
			Field:   "filter",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}
