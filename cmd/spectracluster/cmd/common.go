package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ChrisMcGann/SpectraCluster/pkg/analyser"
	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/reader/clustering"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
)

// progressInterval is the number of clusters between progress messages.
const progressInterval = 1000

// checkInput fails unless path exists. "-" reads standard input.
func checkInput(path string) error {
	if path == "-" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return nil
}

// checkFiles validates an input and an output path.
func checkFiles(input, output string) error {
	if err := checkInput(input); err != nil {
		return err
	}
	return writer.CheckOutput(output)
}

// processFile streams all clusters of path through the processors and
// prints progress.
func processFile(path string, processors ...analyser.Processor) (int, error) {
	fmt.Printf("Parsing input .clustering file %s...\n", path)

	count := 0
	progress := analyser.ProcessorFunc(func(*core.Cluster) error {
		count++
		if count%progressInterval == 0 {
			fmt.Printf("Processed %d clusters...\n", count)
		}
		return nil
	})

	n, err := analyser.Run(clustering.All(path), append(processors, progress)...)
	if err != nil {
		return n, fmt.Errorf("error reading %s: %w", path, err)
	}
	return n, nil
}

// readIDList reads one id per line. Blank lines are skipped.
func readIDList(path string) (map[string]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open id list: %w", err)
	}
	defer file.Close()

	ids := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids[id] = true
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading id list: %w", err)
	}

	return ids, nil
}

// loadModDatabase returns the default modification masses, extended by
// the CSV file at path if set.
func loadModDatabase(path string) (*core.ModDatabase, error) {
	modDB := core.DefaultModDatabase()
	if path == "" {
		return modDB, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open modification file: %w", err)
	}
	defer f.Close()

	if err := modDB.LoadFromCSV(f); err != nil {
		return nil, fmt.Errorf("failed to load modification file: %w", err)
	}
	return modDB, nil
}

// withPartFile creates the output for path, lets write fill it and
// commits it only if write succeeds.
func withPartFile(path string, write func(out *writer.PartFile) error) error {
	out, err := writer.CreatePart(path)
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := write(out); err != nil {
		return err
	}
	return out.Commit()
}
