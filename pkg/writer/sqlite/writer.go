// Package sqlite exports clusters and their spectra to an SQLite database
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ChrisMcGann/SpectraCluster/pkg/core"
	"github.com/ChrisMcGann/SpectraCluster/pkg/writer"
	_ "github.com/mattn/go-sqlite3"
)

// Date format for HeaderTable (ISO 8601)
const headerDateFormat = "2006-01-02"

// SchemaVersion is stored in HeaderTable.
const SchemaVersion = 1

// Writer handles writing clusters to SQLite database files. The database
// is built as "<path>.part" and renamed by Finalize.
type Writer struct {
	db           *sql.DB
	tx           *sql.Tx
	outputPath   string
	source       string
	clusterStmt  *sql.Stmt
	spectrumStmt *sql.Stmt
	psmStmt      *sql.Stmt
	clusterID    int
	spectrumID   int
	psmID        int
	closed       bool
}

// NewWriter creates a new SQLite writer. source is recorded in the header
// table as the input the database was built from.
func NewWriter(outputPath, source string) (*Writer, error) {
	if err := writer.CheckOutput(outputPath); err != nil {
		return nil, err
	}

	partPath := writer.PartPath(outputPath)
	if err := os.Remove(partPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale output: %w", err)
	}

	db, err := sql.Open("sqlite3", partPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		source:     source,
		clusterID:  1,
		spectrumID: 1,
		psmID:      1,
	}

	if err := w.createTables(); err != nil {
		w.Abort()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		w.Abort()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ClusterTable (
		ClusterId INTEGER PRIMARY KEY,
		Accession TEXT NOT NULL,
		PrecursorMZ DOUBLE,
		Charge INTEGER,
		Size INTEGER,
		IdentifiedSpectra INTEGER,
		UnidentifiedSpectra INTEGER,
		MaxRatio DOUBLE,
		MaxILRatio DOUBLE,
		MaxSequences TEXT,
		PrecursorMZRange DOUBLE,
		blobMass BLOB,
		blobIntensity BLOB
	);

	CREATE TABLE IF NOT EXISTS SpectrumTable (
		SpectrumId INTEGER PRIMARY KEY,
		ClusterId INTEGER REFERENCES ClusterTable(ClusterId),
		Title TEXT,
		Filename TEXT,
		SpecId TEXT,
		OriginalTitle TEXT,
		PrecursorMass DOUBLE,
		Charge DOUBLE,
		TaxIds TEXT,
		Identified BOOL
	);

	CREATE TABLE IF NOT EXISTS PSMTable (
		PSMId INTEGER PRIMARY KEY,
		SpectrumId INTEGER REFERENCES SpectrumTable(SpectrumId),
		Sequence TEXT,
		CleanSequence TEXT,
		Modifications TEXT,
		Annotated TEXT
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		SourceFile TEXT,
		NoofClusters INTEGER,
		NoofSpectra INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_cluster_accession ON ClusterTable(Accession);
	CREATE INDEX IF NOT EXISTS idx_spectrum_cluster ON SpectrumTable(ClusterId);
	CREATE INDEX IF NOT EXISTS idx_psm_spectrum ON PSMTable(SpectrumId);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements starts the write transaction and prepares the insert
// statements on it
func (w *Writer) prepareStatements() error {
	var err error

	w.tx, err = w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	w.clusterStmt, err = w.tx.Prepare(`
		INSERT INTO ClusterTable (
			ClusterId, Accession, PrecursorMZ, Charge, Size,
			IdentifiedSpectra, UnidentifiedSpectra, MaxRatio, MaxILRatio,
			MaxSequences, PrecursorMZRange, blobMass, blobIntensity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cluster statement: %w", err)
	}

	w.spectrumStmt, err = w.tx.Prepare(`
		INSERT INTO SpectrumTable (
			SpectrumId, ClusterId, Title, Filename, SpecId, OriginalTitle,
			PrecursorMass, Charge, TaxIds, Identified
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare spectrum statement: %w", err)
	}

	w.psmStmt, err = w.tx.Prepare(`
		INSERT INTO PSMTable (
			PSMId, SpectrumId, Sequence, CleanSequence, Modifications, Annotated
		) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare PSM statement: %w", err)
	}

	return nil
}

// WriteCluster writes a cluster with all its spectra and PSMs
func (w *Writer) WriteCluster(c *core.Cluster) error {
	if w.closed {
		return fmt.Errorf("write to closed database %s", w.outputPath)
	}

	// Ratios are NULL for clusters without identifications
	var maxRatio, maxILRatio interface{}
	if r, ok := c.MaxRatio(); ok {
		maxRatio = r
	}
	if r, ok := c.MaxILRatio(); ok {
		maxILRatio = r
	}

	_, err := w.clusterStmt.Exec(
		w.clusterID,                         // ClusterId
		c.ID,                                // Accession
		c.PrecursorMZ,                       // PrecursorMZ
		c.Charge(),                          // Charge
		c.NSpectra(),                        // Size
		c.IdentifiedSpectra(),               // IdentifiedSpectra
		c.UnidentifiedSpectra(),             // UnidentifiedSpectra
		maxRatio,                            // MaxRatio
		maxILRatio,                          // MaxILRatio
		strings.Join(c.MaxSequences(), ","), // MaxSequences
		c.PrecursorMZRange(),                // PrecursorMZRange
		encodeFloat64s(c.ConsensusMZ),       // blobMass
		encodeFloat64s(c.ConsensusIntens),   // blobIntensity
	)
	if err != nil {
		return fmt.Errorf("failed to insert cluster %s: %w", c.ID, err)
	}

	for _, s := range c.Spectra() {
		if err := w.writeSpectrum(s); err != nil {
			return fmt.Errorf("failed to insert spectrum %s: %w", s.Title, err)
		}
	}

	w.clusterID++
	return nil
}

// ProcessCluster writes the cluster.
func (w *Writer) ProcessCluster(c *core.Cluster) error {
	return w.WriteCluster(c)
}

func (w *Writer) writeSpectrum(s *core.Spectrum) error {
	// Composite title parts are NULL when absent
	var filename, specID interface{}
	if v, ok := s.Filename(); ok {
		filename = v
	}
	if v, ok := s.ID(); ok {
		specID = v
	}

	_, err := w.spectrumStmt.Exec(
		w.spectrumID,                // SpectrumId
		w.clusterID,                 // ClusterId
		s.Title,                     // Title
		filename,                    // Filename
		specID,                      // SpecId
		s.OriginalTitle(),           // OriginalTitle
		s.PrecursorMZ,               // PrecursorMass
		s.Charge,                    // Charge
		strings.Join(s.TaxIDs, ","), // TaxIds
		s.IsIdentified(),            // Identified
	)
	if err != nil {
		return err
	}

	for _, p := range s.PSMs {
		_, err := w.psmStmt.Exec(
			w.psmID,                 // PSMId
			w.spectrumID,            // SpectrumId
			p.Sequence,              // Sequence
			p.CleanSequence(),       // CleanSequence
			core.FormatPTMs(p.PTMs), // Modifications
			p.String(),              // Annotated
		)
		if err != nil {
			return fmt.Errorf("failed to insert PSM %s: %w", p.Sequence, err)
		}
		w.psmID++
	}

	w.spectrumID++
	return nil
}

// encodeFloat64s encodes values as a little-endian float64 blob
func encodeFloat64s(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeFloat64s decodes a blob written by the writer.
func DecodeFloat64s(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 8", len(blob))
	}
	values := make([]float64, len(blob)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return values, nil
}

// Finalize writes the header table, commits and closes the database and
// moves it to its final path
func (w *Writer) Finalize() error {
	if w.closed {
		return nil
	}

	// Write HeaderTable
	_, err := w.tx.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, SourceFile, NoofClusters, NoofSpectra)
		VALUES (?, ?, ?, ?, ?)
	`, SchemaVersion, time.Now().Format(headerDateFormat), w.source, w.clusterID-1, w.spectrumID-1)
	if err != nil {
		w.Abort()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	w.closeStatements()

	if err := w.tx.Commit(); err != nil {
		w.Abort()
		return fmt.Errorf("failed to commit database: %w", err)
	}
	w.tx = nil

	w.closed = true
	if err := w.db.Close(); err != nil {
		os.Remove(writer.PartPath(w.outputPath))
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := writer.Promote(w.outputPath); err != nil {
		os.Remove(writer.PartPath(w.outputPath))
		return err
	}

	return nil
}

// Abort discards everything written so far. It is a no-op after Finalize.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true

	w.closeStatements()
	if w.tx != nil {
		w.tx.Rollback()
	}
	w.db.Close()
	os.Remove(writer.PartPath(w.outputPath))
}

func (w *Writer) closeStatements() {
	for _, stmt := range []*sql.Stmt{w.clusterStmt, w.spectrumStmt, w.psmStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	w.clusterStmt, w.spectrumStmt, w.psmStmt = nil, nil, nil
}
