package loader

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// readSQLite reads every row of a table from a SQLite file opened
// read-only. NULL values become empty fields, which load as null cells.
func readSQLite(ctx context.Context, path, table string) ([]string, [][]string, error) {
	if !identifier.MatchString(table) {
		return nil, nil, fmt.Errorf("table name %q: %w", table, internalerr.ErrInvalidInput)
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, nil, fmt.Errorf("query table %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var data [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan row: %w", err)
		}
		row := make([]string, len(header))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return header, data, nil
}
