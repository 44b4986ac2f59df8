package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/sqlite"
)

var (
	dbInput  string
	dbOutput string
	dbConfig *filter.Config
)

var exportDBCmd = &cobra.Command{
	Use:   "export-db",
	Short: "Export clusters, spectra and PSMs to a SQLite database",
	Long: `Export the matching clusters with their spectra and PSMs to a SQLite
database for ad hoc queries.

Tables:
  HeaderTable    - source file, creation date and counts
  ClusterTable   - one row per cluster with its statistics and consensus peaks
  SpectrumTable  - one row per clustered spectrum
  PSMTable       - one row per identification

Example:
  spectracluster export-db --in result.clustering --out result.db --min-size 2`,
	RunE: runExportDB,
}

func init() {
	rootCmd.AddCommand(exportDBCmd)

	exportDBCmd.Flags().StringVarP(&dbInput, "in", "i", "", "Input .clustering file (required)")
	exportDBCmd.Flags().StringVarP(&dbOutput, "out", "o", "", "Output SQLite database (required)")
	dbConfig = addFilterFlags(exportDBCmd, filter.DefaultConfig())

	exportDBCmd.MarkFlagRequired("in")
	exportDBCmd.MarkFlagRequired("out")
}

func runExportDB(cmd *cobra.Command, args []string) error {
	if err := checkInput(dbInput); err != nil {
		return err
	}
	if err := dbConfig.Validate(); err != nil {
		return err
	}

	fmt.Printf("Creating SQLite database %s...\n", dbOutput)
	w, err := sqlite.NewWriter(dbOutput, dbInput)
	if err != nil {
		return err
	}

	n, err := processFile(dbInput, analyser.Filtered(dbConfig, w))
	if err != nil {
		w.Abort()
		return err
	}

	fmt.Println("Finalizing database...")
	if err := w.Finalize(); err != nil {
		return err
	}

	fmt.Printf("Read: %d clusters\n", n)
	fmt.Printf("Results written to %s\n", dbOutput)
	return nil
}
