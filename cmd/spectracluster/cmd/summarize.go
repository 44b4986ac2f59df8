package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.clustering>",
	Short: "Print an overview of a .clustering file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

// clusterSummary accumulates the overview printed by summarize.
type clusterSummary struct {
	clusters     int
	spectra      int
	identified   int
	unidentified int
	sizes        []float64
	minMZ, maxMZ float64
}

func newClusterSummary() *clusterSummary {
	return &clusterSummary{minMZ: math.Inf(1), maxMZ: math.Inf(-1)}
}

func (s *clusterSummary) ProcessCluster(c *core.Cluster) error {
	s.clusters++
	s.spectra += c.NSpectra()
	s.identified += c.IdentifiedSpectra()
	s.unidentified += c.UnidentifiedSpectra()
	s.sizes = append(s.sizes, float64(c.NSpectra()))
	s.minMZ = math.Min(s.minMZ, c.PrecursorMZ)
	s.maxMZ = math.Max(s.maxMZ, c.PrecursorMZ)
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := checkInput(path); err != nil {
		return err
	}

	summary := newClusterSummary()
	if _, err := processFile(path, analyser.Processor(summary)); err != nil {
		return err
	}

	fmt.Printf("Clusters:              %d\n", summary.clusters)
	fmt.Printf("Spectra:               %d\n", summary.spectra)
	fmt.Printf("Identified spectra:    %d\n", summary.identified)
	fmt.Printf("Unidentified spectra:  %d\n", summary.unidentified)
	if summary.clusters == 0 {
		return nil
	}

	mean, std := stat.MeanStdDev(summary.sizes, nil)
	fmt.Printf("Cluster size:          %.2f +/- %.2f\n", mean, std)
	fmt.Printf("Precursor m/z range:   %.4f - %.4f\n", summary.minMZ, summary.maxMZ)
	return nil
}
