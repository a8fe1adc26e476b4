package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var SQLiteDialect = Dialect{
	name:        "sqlite",
	schema:      sqliteSchema,
	appUsersDDL: sqliteAppUsersDDL,
	upsertAppUser: `
		INSERT INTO APP_USERS (Username, Password, Role)
		VALUES (?, ?, ?)
		ON CONFLICT(Username) DO UPDATE SET Password = excluded.Password, Role = excluded.Role`,
	classify: classifySQLite,
}

// NewSQLiteDB opens (or creates) the embedded store and bootstraps the full
// schema. Foreign keys are enforced on the connection.
func NewSQLiteDB(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// One connection: SQLite serializes writers anyway, and an in-memory
	// database only lives as long as its connection.
	db.SetMaxOpenConns(1)

	s := New(db, SQLiteDialect)
	ctx := context.Background()
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}
	if err := s.Migrate(ctx, true); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func classifySQLite(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		// Extended codes keep the primary code in the low byte.
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	return classifyCommon(err)
}
