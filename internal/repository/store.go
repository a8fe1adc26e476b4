package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	name          string
	schema        []string
	appUsersDDL   string
	upsertAppUser string
	classify      func(error) error
}

func (d Dialect) String() string {
	return d.name
}

// SQLStore implements Store on a shared *sql.DB pool. It holds no other
// state, so concurrent requests only contend inside the database.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Migrate ensures APP_USERS exists. With full set it also creates the
// fleet tables.
func (s *SQLStore) Migrate(ctx context.Context, full bool) error {
	stmts := []string{s.dialect.appUsersDDL}
	if full {
		stmts = s.dialect.schema
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return s.wrap("migrate", err)
		}
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w: %w", s.dialect, ErrUnavailable, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, s.dialect.classify(err))
}

// queryRows runs query and scans every row; an empty result is an empty
// non-nil slice.
func queryRows[T any](ctx context.Context, s *SQLStore, op, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.wrap(op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, s.wrap(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(op, err)
	}
	return out, nil
}

func (s *SQLStore) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, s.wrap(op, err)
	}
	return n, nil
}

// execAffecting runs a write that must touch at least one row.
func (s *SQLStore) execAffecting(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return s.wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
