// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
)

var rootCmd = &cobra.Command{
	Use:   "spectracluster",
	Short: "SpectraCluster - tools for spectrum clustering results",
	Long: `SpectraCluster reads .clustering result files produced by the
spectra-cluster applications and derives tables, spectra and databases
from them.

Supported tasks:
- Filtering clusters by size, ratio and identification counts
- Exporting consensus spectra as MGF
- Cluster parameter, feature and spectrum tables
- Identification transfer to unidentified spectra
- Clustering statistics and comparison of two clusterings
- SQLite export`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// addFilterFlags binds the shared cluster filter flags of cmd to a new
// filter.Config, starting from defaults.
func addFilterFlags(cmd *cobra.Command, defaults *filter.Config) *filter.Config {
	cfg := *defaults
	f := cmd.Flags()

	f.IntVar(&cfg.MinSize, "min-size", cfg.MinSize, "Minimum number of spectra in a cluster")
	f.IntVar(&cfg.MaxSize, "max-size", cfg.MaxSize, "Maximum number of spectra in a cluster")
	f.Float64Var(&cfg.MinRatio, "min-ratio", cfg.MinRatio, "Minimum I/L agnostic max ratio of a cluster")
	f.Float64Var(&cfg.MaxRatio, "max-ratio", cfg.MaxRatio, "Maximum I/L agnostic max ratio of a cluster")
	f.IntVar(&cfg.MinIdentified, "min-identified", cfg.MinIdentified, "Minimum number of identified spectra")
	f.IntVar(&cfg.MaxIdentified, "max-identified", cfg.MaxIdentified, "Maximum number of identified spectra")
	f.IntVar(&cfg.MinUnidentified, "min-unidentified", cfg.MinUnidentified, "Minimum number of unidentified spectra")
	f.IntVar(&cfg.MaxUnidentified, "max-unidentified", cfg.MaxUnidentified, "Maximum number of unidentified spectra")

	return &cfg
}
