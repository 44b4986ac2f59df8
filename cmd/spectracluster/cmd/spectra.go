package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
)

var (
	spectraInput  string
	spectraOutput string
	spectraConfig *filter.Config
)

var spectraCmd = &cobra.Command{
	Use:   "spectra",
	Short: "List the spectra of every cluster",
	Long: `Write a tab separated table with the columns cluster_id and
spectrum_title holding one row per clustered spectrum.

Example:
  spectracluster spectra --in result.clustering --out spectra.tsv.gz --min-size 2`,
	RunE: runSpectra,
}

func init() {
	rootCmd.AddCommand(spectraCmd)

	spectraCmd.Flags().StringVarP(&spectraInput, "in", "i", "", "Input .clustering file (required)")
	spectraCmd.Flags().StringVarP(&spectraOutput, "out", "o", "", "Output TSV file (required)")
	spectraConfig = addFilterFlags(spectraCmd, filter.DefaultConfig())

	spectraCmd.MarkFlagRequired("in")
	spectraCmd.MarkFlagRequired("out")
}

func runSpectra(cmd *cobra.Command, args []string) error {
	if err := checkFiles(spectraInput, spectraOutput); err != nil {
		return err
	}
	if err := spectraConfig.Validate(); err != nil {
		return err
	}

	written := 0
	err := withPartFile(spectraOutput, func(out *writer.PartFile) error {
		lister := analyser.NewSpectraLister(out)
		lister.Filter = spectraConfig

		if _, err := processFile(spectraInput, lister); err != nil {
			return err
		}
		written = lister.Rows()
		return lister.Flush()
	})
	if err != nil {
		return err
	}

	fmt.Printf("Written: %d spectra\n", written)
	fmt.Printf("Results written to %s\n", spectraOutput)
	return nil
}
