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
	paramsInput  string
	paramsOutput string
	paramsMods   string
	paramsConfig *filter.Config
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Write per cluster parameters as a table",
	Long: `Write one tab separated row per cluster with its size, ratios,
precursor m/z spread, most common sequences and the theoretical m/z of
the most common identification.

Modification masses default to a built-in set of common UNIMOD and PSI-MOD
accessions. Use --mods to add a CSV file of accession,mass pairs.

Example:
  spectracluster params --in result.clustering --out params.tsv --mods mods.csv`,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)

	paramsCmd.Flags().StringVarP(&paramsInput, "in", "i", "", "Input .clustering file (required)")
	paramsCmd.Flags().StringVarP(&paramsOutput, "out", "o", "", "Output TSV file (required)")
	paramsCmd.Flags().StringVar(&paramsMods, "mods", "", "Modification masses CSV (accession,mass)")
	paramsConfig = addFilterFlags(paramsCmd, filter.DefaultConfig())

	paramsCmd.MarkFlagRequired("in")
	paramsCmd.MarkFlagRequired("out")
}

func runParams(cmd *cobra.Command, args []string) error {
	if err := checkFiles(paramsInput, paramsOutput); err != nil {
		return err
	}
	if err := paramsConfig.Validate(); err != nil {
		return err
	}

	modDB, err := loadModDatabase(paramsMods)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d modification masses\n", modDB.Len())

	extractor := analyser.NewParameterExtractor(modDB)
	extractor.Filter = paramsConfig

	if _, err := processFile(paramsInput, extractor); err != nil {
		return err
	}

	rows := extractor.Rows()
	err = withPartFile(paramsOutput, func(out *writer.PartFile) error {
		return table.WriteTSV(out, rows)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Written: %d clusters\n", len(rows))
	fmt.Printf("Results written to %s\n", paramsOutput)
	return nil
}
