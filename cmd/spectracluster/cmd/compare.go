package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/table"
)

var (
	compareOutput string
	compareConfig *filter.Config
)

var compareCmd = &cobra.Command{
	Use:   "compare <first.clustering> <second.clustering>",
	Short: "Compare two clusterings of the same spectra",
	Long: `Compare two .clustering files built from the same spectra.

The file with fewer clusters provides the "stars", the other one the
"starlets". Every star is linked to the starlets it shares spectra with;
the report lists size distributions, similarity of linked clusters,
connected components and how often clusters were split.

Example:
  spectracluster compare --out comparison.tsv run1.clustering run2.clustering`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	defaults := filter.DefaultConfig()
	defaults.MinSize = analyser.DefaultCompareMinSize

	compareCmd.Flags().StringVarP(&compareOutput, "out", "o", "", "Output report file (required)")
	compareConfig = addFilterFlags(compareCmd, defaults)

	compareCmd.MarkFlagRequired("out")
}

func runCompare(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if err := checkInput(path); err != nil {
			return err
		}
	}
	if err := writer.CheckOutput(compareOutput); err != nil {
		return err
	}
	if err := compareConfig.Validate(); err != nil {
		return err
	}

	comparer := analyser.NewComparer()
	comparer.Filter = compareConfig

	for i, path := range args {
		if _, err := processFile(path, comparer.List(i)); err != nil {
			return err
		}
	}

	result, err := comparer.Compare()
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	err = withPartFile(compareOutput, func(out *writer.PartFile) error {
		return table.WriteSections(out, result.Sections())
	})
	if err != nil {
		return err
	}

	fmt.Printf("Stars: %s (%d clusters), starlets: %s (%d clusters)\n",
		args[result.Stars.File], result.Stars.Clusters,
		args[result.Starlets.File], result.Starlets.Clusters)
	fmt.Printf("Identical clusters: %d\n", result.IdenticalClusters())
	fmt.Printf("Results written to %s\n", compareOutput)
	return nil
}
