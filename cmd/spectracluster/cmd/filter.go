package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/filter"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer/clustering"
)

var (
	filterInput      string
	filterOutput     string
	filterClusterIDs string
	filterProjectIDs string
	filterConfig     *filter.Config
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Write the clusters matching the filter criteria to a new .clustering file",
	Long: `Write the clusters matching the filter criteria to a new .clustering file.

With --project-ids only spectra from the listed PRIDE projects are kept;
the size and ratio criteria then apply to the reduced clusters.

Examples:
  # Keep clusters with at least 5 spectra and a ratio of 0.7 or more
  spectracluster filter --in result.clustering --out filtered.clustering --min-size 5 --min-ratio 0.7

  # Keep the listed clusters only
  spectracluster filter --in result.clustering --out selected.clustering --cluster-ids ids.txt`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&filterInput, "in", "i", "", "Input .clustering file (required)")
	filterCmd.Flags().StringVarP(&filterOutput, "out", "o", "", "Output .clustering file (required)")
	filterCmd.Flags().StringVar(&filterClusterIDs, "cluster-ids", "", "File with cluster ids to keep, one per line")
	filterCmd.Flags().StringVar(&filterProjectIDs, "project-ids", "", "File with PRIDE project accessions to keep, one per line")
	filterConfig = addFilterFlags(filterCmd, filter.DefaultConfig())

	filterCmd.MarkFlagRequired("in")
	filterCmd.MarkFlagRequired("out")
}

func runFilter(cmd *cobra.Command, args []string) error {
	if err := checkFiles(filterInput, filterOutput); err != nil {
		return err
	}
	if err := filterConfig.Validate(); err != nil {
		return err
	}

	var clusterIDs, projectIDs map[string]bool
	var err error
	if filterClusterIDs != "" {
		if clusterIDs, err = readIDList(filterClusterIDs); err != nil {
			return err
		}
		fmt.Printf("Loaded %d cluster ids\n", len(clusterIDs))
	}
	if filterProjectIDs != "" {
		if projectIDs, err = readIDList(filterProjectIDs); err != nil {
			return err
		}
		fmt.Printf("Loaded %d project ids\n", len(projectIDs))
	}

	written := 0
	err = withPartFile(filterOutput, func(out *writer.PartFile) error {
		w := clustering.NewWriter(out)

		selector := analyser.ProcessorFunc(func(c *core.Cluster) error {
			if clusterIDs != nil && !clusterIDs[c.ID] {
				return nil
			}
			if projectIDs != nil {
				filter.KeepProjects(c, projectIDs)
				if c.NSpectra() == 0 {
					return nil
				}
			}
			if filterConfig.Ignore(c) {
				return nil
			}
			return w.WriteCluster(c)
		})

		if _, err := processFile(filterInput, selector); err != nil {
			return err
		}
		written = w.Count()
		return w.Flush()
	})
	if err != nil {
		return err
	}

	fmt.Printf("Written: %d clusters\n", written)
	fmt.Printf("Results written to %s\n", filterOutput)
	return nil
}
