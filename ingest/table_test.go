package ingest

import (
	"errors"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "simple lowercase",
			raw:  "zip_county",
			want: "zip_county",
		},
		{
			name: "uppercase is lowered",
			raw:  "County_Code",
			want: "county_code",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  zip ",
			want: "zip",
		},
		{
			name: "leading BOM dropped",
			raw:  "\uFEFFstate",
			want: "state",
		},
		{
			name: "leading underscore allowed",
			raw:  "_hidden",
			want: "_hidden",
		},
		{
			name:    "leading digit rejected",
			raw:     "2020_population",
			wantErr: true,
		},
		{
			name:    "embedded space rejected",
			raw:     "measure name",
			wantErr: true,
		},
		{
			name:    "hyphen rejected",
			raw:     "year-span",
			wantErr: true,
		},
		{
			name:    "empty after trim rejected",
			raw:     "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := validateIdentifier(tt.raw, "column name")
			if tt.wantErr {
				if !errors.Is(err, ErrSchema) {
					t.Fatalf("expected ErrSchema for %q, got %v", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateColumns_Duplicate(t *testing.T) {
	t.Parallel()

	_, err := validateColumns([]string{"zip", "county", "ZIP"})
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for duplicate columns, got %v", err)
	}
}

func TestTableNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filePath string
		expected string
	}{
		{
			name:     "simple csv",
			filePath: "zip_county.csv",
			expected: "zip_county",
		},
		{
			name:     "absolute path",
			filePath: "/data/county_health_rankings.csv",
			expected: "county_health_rankings",
		},
		{
			name:     "tsv",
			filePath: "rankings.tsv",
			expected: "rankings",
		},
		{
			name:     "gzip compressed",
			filePath: "zip_county.csv.gz",
			expected: "zip_county",
		},
		{
			name:     "zstd compressed",
			filePath: "zip_county.csv.zst",
			expected: "zip_county",
		},
		{
			name:     "xlsx",
			filePath: "rankings.xlsx",
			expected: "rankings",
		},
		{
			name:     "parquet",
			filePath: "rankings.parquet",
			expected: "rankings",
		},
		{
			name:     "multiple dots keep inner",
			filePath: "data.backup.csv",
			expected: "data.backup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tableNameFromPath(tt.filePath); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDetectFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filePath string
		expected fileType
	}{
		{"data.csv", fileTypeCSV},
		{"data.tsv", fileTypeTSV},
		{"data.CSV", fileTypeCSV},
		{"data.csv.gz", fileTypeCSV},
		{"data.tsv.bz2", fileTypeTSV},
		{"data.csv.xz", fileTypeCSV},
		{"data.csv.zst", fileTypeCSV},
		{"data.xlsx", fileTypeXLSX},
		{"data.parquet", fileTypeParquet},
		{"data.json", fileTypeUnsupported},
		{"data", fileTypeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			t.Parallel()

			if got := detectFileType(tt.filePath); got != tt.expected {
				t.Errorf("detectFileType(%q) = %v, want %v", tt.filePath, got, tt.expected)
			}
		})
	}
}
