// Package table writes tab separated result tables. Fixed column tables
// are derived from the csv struct tags of their row type.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

// NA marks a missing value.
const NA = "NA"

func newTSVWriter(w io.Writer) *gocsv.SafeCSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return gocsv.NewSafeCSVWriter(cw)
}

// Writer streams rows of T. The header is written with the first batch,
// or by Flush if no row was ever written.
type Writer[T any] struct {
	tsv    *gocsv.SafeCSVWriter
	header bool
	rows   int
}

// NewWriter creates a table writer for rows of T
func NewWriter[T any](w io.Writer) *Writer[T] {
	return &Writer[T]{tsv: newTSVWriter(w)}
}

// Write appends rows to the table.
func (w *Writer[T]) Write(rows ...T) error {
	if len(rows) == 0 && w.header {
		return nil
	}

	var err error
	if w.header {
		err = gocsv.MarshalCSVWithoutHeaders(rows, w.tsv)
	} else {
		err = gocsv.MarshalCSV(rows, w.tsv)
		w.header = true
	}
	if err != nil {
		return fmt.Errorf("failed to write table rows: %w", err)
	}

	w.rows += len(rows)
	return nil
}

// Rows returns the number of rows written so far.
func (w *Writer[T]) Rows() int {
	return w.rows
}

// Flush writes the header if needed and flushes buffered output.
func (w *Writer[T]) Flush() error {
	if !w.header {
		return w.Write()
	}
	w.tsv.Flush()
	return w.tsv.Error()
}

// WriteTSV writes a complete table of rows.
func WriteTSV[T any](w io.Writer, rows []T) error {
	tw := NewWriter[T](w)
	if err := tw.Write(rows...); err != nil {
		return err
	}
	return tw.Flush()
}

// Matrix is a table of counts with named rows and columns.
type Matrix struct {
	Corner  string   // header of the row name column
	Columns []string // column names
	Rows    []string // row names
	Values  [][]int  // Values[row][column]
}

// WriteMatrix writes m with one header line and one line per row.
func WriteMatrix(w io.Writer, m *Matrix) error {
	tsv := newTSVWriter(w)

	header := append([]string{m.Corner}, m.Columns...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("failed to write matrix header: %w", err)
	}

	record := make([]string, len(m.Columns)+1)
	for i, name := range m.Rows {
		if len(m.Values[i]) != len(m.Columns) {
			return fmt.Errorf("row %s has %d values, expected %d", name, len(m.Values[i]), len(m.Columns))
		}
		record[0] = name
		for j, v := range m.Values[i] {
			record[j+1] = strconv.Itoa(v)
		}
		if err := tsv.Write(record); err != nil {
			return fmt.Errorf("failed to write matrix row %s: %w", name, err)
		}
	}

	tsv.Flush()
	return tsv.Error()
}

// FormatFloat renders v in its shortest exact form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatOptional renders v, or NA if ok is false.
func FormatOptional(v float64, ok bool) string {
	if !ok {
		return NA
	}
	return FormatFloat(v)
}

// Section is one titled block of a multi-table report.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
}

// WriteSections writes each section as "# <title>" followed by its header
// and rows, separated by blank lines.
func WriteSections(w io.Writer, sections []Section) error {
	for i, s := range sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "# "+s.Title+"\n"); err != nil {
			return err
		}

		tsv := newTSVWriter(w)
		if err := tsv.Write(s.Header); err != nil {
			return fmt.Errorf("failed to write section %q: %w", s.Title, err)
		}
		for _, row := range s.Rows {
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("failed to write section %q: %w", s.Title, err)
			}
		}
		tsv.Flush()
		if err := tsv.Error(); err != nil {
			return fmt.Errorf("failed to write section %q: %w", s.Title, err)
		}
	}
	return nil
}
