// Package sqlite provides SQLite database writing for adduct annotations
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/adductid/pkg/annotation"
	"github.com/ChrisMcGann/adductid/pkg/core"
)

// Date format for HeaderTable (ISO 8601)
const headerDateFormat = "2006-01-02"

// schemaVersion is written to HeaderTable.version
const schemaVersion = 1

// Writer handles writing annotations to SQLite database files
type Writer struct {
	db             *sql.DB
	outputPath     string
	lipidStmt      *sql.Stmt
	annotationStmt *sql.Stmt
	lipidIDs       map[core.Lipid]int64
	nextLipidID    int64
	annotationID   int64
	finalized      bool
}

// NewWriter creates a new SQLite writer. An existing file at outputPath is
// replaced.
func NewWriter(outputPath string) (*Writer, error) {
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to replace existing database: %w", err)
	}

	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:           db,
		outputPath:   outputPath,
		lipidIDs:     make(map[core.Lipid]int64),
		nextLipidID:  1,
		annotationID: 1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		w.close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS LipidTable (
		LipidId INTEGER PRIMARY KEY,
		CompoundId INTEGER,
		Name TEXT,
		Formula TEXT,
		LipidType TEXT,
		CarbonCount INTEGER,
		DoubleBondsCount INTEGER
	);

	CREATE TABLE IF NOT EXISTS AnnotationTable (
		AnnotationId INTEGER PRIMARY KEY,
		LipidId INTEGER REFERENCES LipidTable(LipidId),
		Mz DOUBLE,
		RetentionTime DOUBLE,
		Intensity DOUBLE,
		Polarity TEXT,
		Adduct TEXT,
		NeutralMass DOUBLE,
		ExplainedPeaks INTEGER,
		Score INTEGER,
		NormalizedScore DOUBLE,
		PeakCount INTEGER,
		blobMass BLOB,
		blobIntensity BLOB
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Description TEXT,
		Tolerance DOUBLE
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.lipidStmt, err = w.db.Prepare(`
		INSERT INTO LipidTable (
			LipidId, CompoundId, Name, Formula, LipidType, CarbonCount, DoubleBondsCount
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare lipid statement: %w", err)
	}

	w.annotationStmt, err = w.db.Prepare(`
		INSERT INTO AnnotationTable (
			AnnotationId, LipidId, Mz, RetentionTime, Intensity, Polarity,
			Adduct, NeutralMass, ExplainedPeaks, Score, NormalizedScore,
			PeakCount, blobMass, blobIntensity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare annotation statement: %w", err)
	}

	return nil
}

// lipidID returns the row id for lipid, inserting it on first use
func (w *Writer) lipidID(lipid core.Lipid) (int64, error) {
	if id, ok := w.lipidIDs[lipid]; ok {
		return id, nil
	}

	id := w.nextLipidID
	var compoundID interface{} = nil
	if lipid.CompoundID != 0 {
		compoundID = lipid.CompoundID
	}

	_, err := w.lipidStmt.Exec(
		id,                     // LipidId
		compoundID,             // CompoundId
		lipid.Name,             // Name
		lipid.Formula,          // Formula
		lipid.LipidType,        // LipidType
		lipid.CarbonCount,      // CarbonCount
		lipid.DoubleBondsCount, // DoubleBondsCount
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert lipid: %w", err)
	}

	w.lipidIDs[lipid] = id
	w.nextLipidID++
	return id, nil
}

// WriteAnnotation writes a single annotation to the database
func (w *Writer) WriteAnnotation(a *annotation.Annotation) error {
	lipidID, err := w.lipidID(a.Lipid)
	if err != nil {
		return err
	}

	peaks := a.GroupedPeaks().Peaks()

	// Encode peaks as binary blobs (little-endian float64)
	mzBlob := encodePeaksFloat64(peaks, true)   // m/z values
	intBlob := encodePeaksFloat64(peaks, false) // intensity values

	_, err = w.annotationStmt.Exec(
		w.annotationID,      // AnnotationId
		lipidID,             // LipidId
		a.MZ,                // Mz
		a.RetentionTime,     // RetentionTime
		a.Intensity,         // Intensity
		a.Polarity.Symbol(), // Polarity
		a.Adduct(),          // Adduct
		a.NeutralMass(),     // NeutralMass
		a.Explained(),       // ExplainedPeaks
		a.Score(),           // Score
		a.NormalizedScore(), // NormalizedScore
		len(peaks),          // PeakCount
		mzBlob,              // blobMass
		intBlob,             // blobIntensity
	)
	if err != nil {
		return fmt.Errorf("failed to insert annotation: %w", err)
	}

	w.annotationID++
	return nil
}

// encodePeaksFloat64 encodes peak data as little-endian float64 blob
func encodePeaksFloat64(peaks []core.Peak, useMZ bool) []byte {
	buf := make([]byte, len(peaks)*8)
	for i, peak := range peaks {
		var value float64
		if useMZ {
			value = peak.MZ
		} else {
			value = peak.Intensity
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(value))
	}
	return buf
}

// DecodePeaksFloat64 reverses encodePeaksFloat64
func DecodePeaksFloat64(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 8", len(blob))
	}
	values := make([]float64, len(blob)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return values, nil
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize(tolerance float64) error {
	if w.finalized {
		return nil
	}
	w.finalized = true

	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Description, Tolerance)
		VALUES (?, ?, ?, ?)
	`, schemaVersion, time.Now().Format(headerDateFormat), "adductid annotations", tolerance)
	if err != nil {
		w.close()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	return w.close()
}

// Close closes the database connection without writing the header table.
// It is a no-op after Finalize.
func (w *Writer) Close() error {
	if w.finalized {
		return nil
	}
	w.finalized = true
	return w.close()
}

func (w *Writer) close() error {
	// Close prepared statements
	if w.lipidStmt != nil {
		w.lipidStmt.Close()
	}
	if w.annotationStmt != nil {
		w.annotationStmt.Close()
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
