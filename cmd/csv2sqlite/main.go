// Command csv2sqlite loads a data file into a SQLite database, one table
// per file. The table is named after the file and dropped and recreated
// on every run.
//
// Usage:
//
//	csv2sqlite <database> <file>
//
// The input may be a CSV, TSV, XLSX, or Parquet file; CSV and TSV inputs
// may additionally be gzip, bzip2, xz, or zstd compressed.
package main

import (
	"fmt"
	"os"

	"github.com/avelez/county-health-api/ingest"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: csv2sqlite <database> <file>")
		os.Exit(2)
	}

	result, err := ingest.Load(os.Args[1], os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("loaded %d rows into table %q (%d columns)\n",
		result.Rows, result.Table, len(result.Columns))
}
