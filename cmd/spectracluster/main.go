// SpectraCluster - tools for .clustering result files
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/SpectraCluster/cmd/spectracluster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
