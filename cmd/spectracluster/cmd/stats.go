package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

const defaultStatsMinSize = 3

var (
	statsOutput  string
	statsMinSize int
)

var statsCmd = &cobra.Command{
	Use:   "stats <file.clustering>...",
	Short: "Write clustering statistics of one or more files",
	Long: `Write one tab separated row of statistics per .clustering file.

Clusters with at least --min-size identified spectra are evaluated. Their
spectra carrying the most common sequence (I/L agnostic) count as
correct, all other identified spectra as incorrect.

Example:
  spectracluster stats --out stats.tsv run1.clustering run2.clustering`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsOutput, "out", "o", "", "Output TSV file (required)")
	statsCmd.Flags().IntVar(&statsMinSize, "min-size", defaultStatsMinSize, "Minimum number of identified spectra of an evaluated cluster")

	statsCmd.MarkFlagRequired("out")
}

func runStats(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if err := checkInput(path); err != nil {
			return err
		}
	}
	if err := writer.CheckOutput(statsOutput); err != nil {
		return err
	}

	results := make([]analyser.ClusteringStatistics, 0, len(args))
	for _, path := range args {
		collector := analyser.NewStatsCollector(path, statsMinSize)
		if _, err := processFile(path, collector); err != nil {
			return err
		}
		results = append(results, collector.Result())
	}

	err := withPartFile(statsOutput, func(out *writer.PartFile) error {
		return table.WriteTSV(out, results)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Results written to %s\n", statsOutput)
	return nil
}
