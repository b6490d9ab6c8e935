package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/slingshot-dev/slingshot/internal/coerce"
)

// DB is a read-only handle over a source database: a desktop system's
// Access file converted to SQLite ahead of the export.
type DB struct {
	db *sql.DB
}

// OpenDB opens path read-only. The connection pool is limited to one
// connection; the export pipeline is single-threaded and SQLite rewards
// not pretending otherwise.
func OpenDB(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source database: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening source database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to source database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring source database %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Rows runs a query and returns one bag per row, keyed by column name as
// returned by the driver (lowercased). NULLs become absent keys.
func (d *DB) Rows(ctx context.Context, query string, args ...any) ([]coerce.Bag, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying source database: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	for i, c := range cols {
		cols[i] = strings.ToLower(c)
	}

	var bags []coerce.Bag
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		bag := coerce.Bag{}
		for i, v := range values {
			if v.Valid {
				bag[cols[i]] = v.String
			}
		}
		bags = append(bags, bag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return bags, nil
}
