package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

// Default thresholds for transferring identifications.
const (
	defaultTransferMinSize  = 5
	defaultTransferMinRatio = 0.7
)

var (
	transferInput            string
	transferOutput           string
	transferOnlyIdentified   bool
	transferOnlyUnidentified bool
	transferConfig           *filter.Config
)

var idTransferCmd = &cobra.Command{
	Use:   "id-transfer",
	Short: "Transfer the majority identification of clusters to their spectra",
	Long: `Write the most common identification of every reliable cluster for
each of its spectra as a tab separated table with the columns filename,
spec_id and sequence.

Examples:
  # Propose identifications for unidentified spectra only
  spectracluster id-transfer --in result.clustering --out transfer.tsv --only-unidentified

  # Use stricter clusters
  spectracluster id-transfer --in result.clustering --out transfer.tsv --min-size 10 --min-ratio 0.9`,
	RunE: runIDTransfer,
}

func init() {
	rootCmd.AddCommand(idTransferCmd)

	defaults := filter.DefaultConfig()
	defaults.MinSize = defaultTransferMinSize
	defaults.MinRatio = defaultTransferMinRatio

	idTransferCmd.Flags().StringVarP(&transferInput, "in", "i", "", "Input .clustering file (required)")
	idTransferCmd.Flags().StringVarP(&transferOutput, "out", "o", "", "Output TSV file (required)")
	idTransferCmd.Flags().BoolVar(&transferOnlyIdentified, "only-identified", false, "Only report spectra that are already identified")
	idTransferCmd.Flags().BoolVar(&transferOnlyUnidentified, "only-unidentified", false, "Only report spectra that are not identified")
	transferConfig = addFilterFlags(idTransferCmd, defaults)

	idTransferCmd.MarkFlagRequired("in")
	idTransferCmd.MarkFlagRequired("out")
	idTransferCmd.MarkFlagsMutuallyExclusive("only-identified", "only-unidentified")
}

func runIDTransfer(cmd *cobra.Command, args []string) error {
	if transferOnlyIdentified && transferOnlyUnidentified {
		return errors.New("--only-identified and --only-unidentified cannot be combined")
	}
	if err := checkFiles(transferInput, transferOutput); err != nil {
		return err
	}
	if err := transferConfig.Validate(); err != nil {
		return err
	}

	transferer := analyser.NewIDTransferer()
	transferer.Filter = transferConfig
	transferer.AddToIdentified = !transferOnlyUnidentified
	transferer.AddToUnidentified = !transferOnlyIdentified

	if _, err := processFile(transferInput, transferer); err != nil {
		return err
	}

	rows := transferer.Rows()
	err := withPartFile(transferOutput, func(out *writer.PartFile) error {
		return table.WriteTSV(out, rows)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Written: %d spectra\n", len(rows))
	fmt.Printf("Results written to %s\n", transferOutput)
	return nil
}
