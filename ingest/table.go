package ingest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// validIdentifier is the rule for table and column names after
// normalization: leading letter or underscore, rest alphanumeric or
// underscore, all lowercase.
var validIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// normalizeIdentifier trims whitespace, drops a UTF-8 BOM, and lowercases
// the value so that CSV headers exported from spreadsheets map to
// predictable SQL identifiers.
func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "\uFEFF"))
}

// validateIdentifier normalizes raw and ensures it is a usable SQL
// identifier. kind names the identifier in error messages ("table name",
// "column name").
func validateIdentifier(raw, kind string) (string, error) {
	value := normalizeIdentifier(raw)
	if value == "" {
		return "", fmt.Errorf("%w: %s %q is empty after normalization", ErrSchema, kind, raw)
	}
	if !validIdentifier.MatchString(value) {
		return "", fmt.Errorf("%w: %s %q is not a valid SQL identifier", ErrSchema, kind, raw)
	}
	return value, nil
}

// validateColumns normalizes and validates every header field and rejects
// duplicates after normalization.
func validateColumns(header []string) ([]string, error) {
	columns := make([]string, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for _, raw := range header {
		col, err := validateIdentifier(raw, "column name")
		if err != nil {
			return nil, err
		}
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrSchema, col)
		}
		seen[col] = struct{}{}
		columns = append(columns, col)
	}
	return columns, nil
}

// tableNameFromPath derives the table name from a file path: base name
// with the compression extension (if any) and the format extension
// stripped.
func tableNameFromPath(path string) string {
	fileName := filepath.Base(path)
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(fileName), ext) {
			fileName = fileName[:len(fileName)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
