package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

// Format extensions recognized on input files, before any compression
// extension is stripped.
const (
	extCSV     = ".csv"
	extTSV     = ".tsv"
	extXLSX    = ".xlsx"
	extParquet = ".parquet"
)

// fileType identifies the base format of an input file.
type fileType int

const (
	fileTypeUnsupported fileType = iota
	fileTypeCSV
	fileTypeTSV
	fileTypeXLSX
	fileTypeParquet
)

// detectFileType determines the base file type after removing any
// compression extension.
func detectFileType(path string) fileType {
	base := path
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case extCSV:
		return fileTypeCSV
	case extTSV:
		return fileTypeTSV
	case extXLSX:
		return fileTypeXLSX
	case extParquet:
		return fileTypeParquet
	default:
		return fileTypeUnsupported
	}
}

// parse reads the decompressed input and returns the raw header row and
// data records for the given base file type.
func parse(ft fileType, reader io.Reader) ([]string, [][]string, error) {
	switch ft {
	case fileTypeCSV:
		return parseDelimited(reader, ',')
	case fileTypeTSV:
		return parseDelimited(reader, '\t')
	case fileTypeXLSX:
		return parseXLSX(reader)
	case fileTypeParquet:
		return parseParquet(reader)
	default:
		return nil, nil, ErrUnsupportedFormat
	}
}

// parseDelimited parses CSV or TSV data. The encoding/csv reader enforces
// a consistent field count, so a row with the wrong number of fields
// surfaces as a parse error carrying its line number.
func parseDelimited(reader io.Reader, delimiter rune) ([]string, [][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyData
	}
	if err != nil {
		return nil, nil, wrapRowError(err)
	}

	var records [][]string
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, wrapRowError(err)
		}
		records = append(records, row)
	}
	return header, records, nil
}

// wrapRowError converts a csv parse error into ErrDataFormat, keeping the
// offending row number when the csv reader reports one.
func wrapRowError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: row %d: %v", ErrDataFormat, parseErr.Line, parseErr.Err)
	}
	return fmt.Errorf("%w: %v", ErrDataFormat, err)
}

// parseXLSX parses the first sheet of an XLSX workbook. Rows shorter than
// the header are padded with empty strings because excelize drops
// trailing empty cells.
func parseXLSX(reader io.Reader) ([]string, [][]string, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = workbook.Close()
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyData
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyData
	}

	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, nil, fmt.Errorf("%w: row %d: has %d fields, header has %d", ErrDataFormat, i+2, len(row), len(header))
		}
		padded := make([]string, len(header))
		copy(padded, row)
		records = append(records, padded)
	}
	return header, records, nil
}

// parseParquet parses Parquet data. Parquet requires random access, so
// the whole input is buffered in memory first.
func parseParquet(reader io.Reader) ([]string, [][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, ErrEmptyData
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	header := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	var records [][]string
	for tableReader.Next() {
		batch := tableReader.Record()
		for i := int64(0); i < batch.NumRows(); i++ {
			row := make([]string, batch.NumCols())
			for j, col := range batch.Columns() {
				row[j] = arrowValue(col, int(i))
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	return header, records, nil
}

// arrowValue renders a single arrow array element as text. Every column
// is stored as TEXT regardless of the parquet schema.
func arrowValue(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return ""
	}
	switch a := col.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10)
	case *array.Float32:
		return strconv.FormatFloat(float64(a.Value(i)), 'g', -1, 32)
	case *array.Float64:
		return strconv.FormatFloat(a.Value(i), 'g', -1, 64)
	case *array.Boolean:
		return strconv.FormatBool(a.Value(i))
	default:
		return col.ValueStr(i)
	}
}
