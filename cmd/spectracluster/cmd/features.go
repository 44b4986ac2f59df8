package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

var (
	featuresInput  string
	featuresOutput string
	featuresByFile bool
	featuresConfig *filter.Config
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Write the number of spectra per sample and cluster as a matrix",
	Long: `Write a tab separated matrix with one row per cluster and one column
per sample holding the number of the cluster's spectra from that sample.

By default the sample is the part of the original spectrum title after
the first ".". With --by-file the peak list filename is used instead.

Example:
  spectracluster features --in result.clustering --out features.tsv --by-file`,
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	featuresCmd.Flags().StringVarP(&featuresInput, "in", "i", "", "Input .clustering file (required)")
	featuresCmd.Flags().StringVarP(&featuresOutput, "out", "o", "", "Output TSV file (required)")
	featuresCmd.Flags().BoolVar(&featuresByFile, "by-file", false, "Use the peak list filename as sample name")
	featuresConfig = addFilterFlags(featuresCmd, filter.DefaultConfig())

	featuresCmd.MarkFlagRequired("in")
	featuresCmd.MarkFlagRequired("out")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	if err := checkFiles(featuresInput, featuresOutput); err != nil {
		return err
	}
	if err := featuresConfig.Validate(); err != nil {
		return err
	}

	sampleName := analyser.BasicSampleName
	if featuresByFile {
		sampleName = analyser.FileSampleName
	}
	features := analyser.NewFeatures(sampleName)
	features.Filter = featuresConfig

	if _, err := processFile(featuresInput, features); err != nil {
		return err
	}

	fmt.Printf("Found %d samples in %d clusters\n", len(features.Samples()), features.Len())

	err := withPartFile(featuresOutput, func(out *writer.PartFile) error {
		return table.WriteMatrix(out, features.Matrix())
	})
	if err != nil {
		return err
	}

	fmt.Printf("Results written to %s\n", featuresOutput)
	return nil
}
