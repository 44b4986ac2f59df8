package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.clustering>",
	Short: "Check that a .clustering file parses and its clusters are consistent",
	Long: `Parse a .clustering file and check every cluster's consensus spectrum.

Each invalid cluster is reported as a warning. The command fails if the
file cannot be parsed or any cluster is invalid.

Example:
  spectracluster validate result.clustering`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := checkInput(path); err != nil {
		return err
	}

	invalid := 0
	validator := analyser.ProcessorFunc(func(c *core.Cluster) error {
		if err := c.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			invalid++
		}
		return nil
	})

	n, err := processFile(path, validator)
	if err != nil {
		return err
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d clusters are invalid", invalid, n)
	}

	fmt.Printf("All %d clusters are valid\n", n)
	return nil
}
