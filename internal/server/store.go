package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned when a ZIP has no county mapping or the join
// yields no ranking rows. Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("no matching records found")

// Store reads county health data from the SQLite file produced by the
// ingestion tool. Each lookup opens its own connection and closes it, so
// the store itself carries no state between requests.
type Store struct {
	dbPath string
}

// NewStore returns a Store reading from the database file at dbPath.
func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

// countyRef identifies a county as recorded in the zip_county table. The
// two source datasets disagree on identifier conventions, so both the
// FIPS code and the name/state pair are carried.
type countyRef struct {
	fips   string
	county string
	state  string
}

// CountyData returns all county_health_rankings rows for the given ZIP
// and measure. Resolution is two-step: the ZIP is mapped to counties via
// zip_county, then rankings are matched by FIPS code first, falling back
// to county-name plus state equality when the FIPS code matches nothing.
func (s *Store) CountyData(ctx context.Context, zip, measure string) ([]map[string]string, error) {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", s.dbPath, err)
	}
	defer db.Close()

	counties, err := s.countiesForZip(ctx, db, zip)
	if err != nil {
		return nil, err
	}
	if len(counties) == 0 {
		return nil, ErrNotFound
	}

	var results []map[string]string
	for _, county := range counties {
		rows, err := s.rankingsForCounty(ctx, db, measure, county)
		if err != nil {
			return nil, err
		}
		results = append(results, rows...)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	results = dedupeRows(results)
	sortRankings(results)
	return results, nil
}

// dedupeRows drops rows identical to an earlier row. A ZIP mapped to the
// same county both with and without a FIPS code yields two county refs
// that resolve to the same ranking rows, once by FIPS and once by name.
func dedupeRows(rows []map[string]string) []map[string]string {
	seen := make(map[string]struct{}, len(rows))
	deduped := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, row)
	}
	return deduped
}

// rowKey serializes a row into a stable comparison key.
func rowKey(row map[string]string) string {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var b strings.Builder
	for _, col := range columns {
		b.WriteString(col)
		b.WriteByte(0)
		b.WriteString(row[col])
		b.WriteByte(0)
	}
	return b.String()
}

// sortRankings restores the global release-year then year-span order.
// Each per-county query is ordered on its own, but a ZIP spanning
// counties concatenates the per-county result sets.
func sortRankings(rows []map[string]string) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i]["data_release_year"] != rows[j]["data_release_year"] {
			return rows[i]["data_release_year"] < rows[j]["data_release_year"]
		}
		return rows[i]["year_span"] < rows[j]["year_span"]
	})
}

// countiesForZip collects the distinct counties mapped to a ZIP code. A
// ZIP can span counties, so more than one row is normal.
func (s *Store) countiesForZip(ctx context.Context, db *sql.DB, zip string) ([]countyRef, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT county_code, county, state_abbreviation FROM zip_county WHERE zip = ?`, zip)
	if err != nil {
		return nil, fmt.Errorf("failed to query zip_county: %w", err)
	}
	defer rows.Close()

	var counties []countyRef
	for rows.Next() {
		var fips, county, state sql.NullString
		if err := rows.Scan(&fips, &county, &state); err != nil {
			return nil, fmt.Errorf("failed to scan zip_county row: %w", err)
		}
		counties = append(counties, countyRef{
			fips:   fips.String,
			county: county.String,
			state:  state.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read zip_county rows: %w", err)
	}
	return counties, nil
}

// rankingsForCounty fetches ranking rows for one county. The FIPS match
// is tried first; the name/state fallback only runs when it returns
// nothing, which keeps the matching strategy attributable in tests.
func (s *Store) rankingsForCounty(ctx context.Context, db *sql.DB, measure string, county countyRef) ([]map[string]string, error) {
	if county.fips != "" {
		matched, err := s.queryRankings(ctx, db,
			`SELECT * FROM county_health_rankings
			 WHERE measure_name = ? AND fipscode = ?
			 ORDER BY data_release_year ASC, year_span ASC`,
			measure, county.fips)
		if err != nil {
			return nil, err
		}
		if len(matched) > 0 {
			return matched, nil
		}
	}

	if county.county == "" || county.state == "" {
		return nil, nil
	}
	return s.queryRankings(ctx, db,
		`SELECT * FROM county_health_rankings
		 WHERE measure_name = ? AND county = ? AND state = ?
		 ORDER BY data_release_year ASC, year_span ASC`,
		measure, county.county, county.state)
}

// queryRankings runs a rankings query and shapes every row as a map of
// column name to stored value. All columns are TEXT by construction.
func (s *Store) queryRankings(ctx context.Context, db *sql.DB, query string, args ...any) ([]map[string]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query county_health_rankings: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var results []map[string]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = values[i].String
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking rows: %w", err)
	}
	return results, nil
}
