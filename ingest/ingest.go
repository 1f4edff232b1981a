// Package ingest loads structured data files into tables of a SQLite
// database file.
//
// The table name is derived from the file name (compression and format
// extensions stripped) and the columns from the header row; every column
// is typed TEXT. The target table is dropped and recreated on each load,
// and all rows are inserted inside a single transaction.
//
// Supported formats: CSV, TSV (optionally compressed with gzip, bzip2,
// xz, or zstd), XLSX (first sheet), and Parquet.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// Result describes a completed load.
type Result struct {
	// Table is the name of the (re)created table.
	Table string
	// Columns are the normalized column names, in header order.
	Columns []string
	// Rows is the number of data rows inserted.
	Rows int64
}

// Load reads the file at srcPath and (re)creates its table in the SQLite
// database at dbPath.
func Load(dbPath, srcPath string) (*Result, error) {
	return LoadContext(context.Background(), dbPath, srcPath)
}

// LoadContext is Load with context support. The context bounds the
// database writes, not the file parsing.
func LoadContext(ctx context.Context, dbPath, srcPath string) (*Result, error) {
	info, err := os.Stat(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", srcPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, srcPath)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, srcPath)
	}

	ft := detectFileType(srcPath)
	if ft == fileTypeUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, srcPath)
	}

	tableName, err := validateIdentifier(tableNameFromPath(srcPath), "table name")
	if err != nil {
		return nil, err
	}

	file, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer file.Close()

	reader, closeReader, err := newDecompressedReader(file, srcPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closeReader()
	}()

	header, records, err := parse(ft, reader)
	if err != nil {
		return nil, err
	}

	columns, err := validateColumns(header)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer db.Close()

	if err := recreateTable(ctx, db, tableName, columns, records); err != nil {
		return nil, err
	}

	return &Result{
		Table:   tableName,
		Columns: columns,
		Rows:    int64(len(records)),
	}, nil
}

// recreateTable drops any existing table with the same name, creates it
// with all-TEXT columns, and inserts every record in one transaction.
func recreateTable(ctx context.Context, db *sql.DB, tableName string, columns []string, records [][]string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf(`"%s" TEXT`, col)
	}
	createSQL := fmt.Sprintf(`CREATE TABLE "%s" (%s)`, tableName, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(`INSERT INTO "%s" VALUES (%s)`, tableName, strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		values := make([]any, len(record))
		for j, v := range record {
			values[j] = v
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i+2, tableName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load of %s: %w", tableName, err)
	}
	return nil
}
