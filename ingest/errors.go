package ingest

import "errors"

// Sentinel errors returned by Load. Callers should match them with
// errors.Is; the wrapped message carries the offending identifier or
// row number.
var (
	// ErrSchema indicates an invalid table or column identifier derived
	// from the source file.
	ErrSchema = errors.New("ingest: invalid schema")

	// ErrDataFormat indicates a malformed data row in the source file.
	ErrDataFormat = errors.New("ingest: malformed data")

	// ErrEmptyData indicates that the source file contains no records.
	ErrEmptyData = errors.New("ingest: empty data source")

	// ErrUnsupportedFormat indicates an unsupported file format.
	ErrUnsupportedFormat = errors.New("ingest: unsupported file format")
)
