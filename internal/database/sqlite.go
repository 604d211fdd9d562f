package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func init() {
	RegisterDriver("sqlite", func(name string, spec Spec) (Handle, error) {
		dsn := spec.DSN
		if dsn == "" {
			dsn = spec.Path
		}
		if dsn == "" {
			return nil, fmt.Errorf("sqlite section %s: dsn or path is required", name)
		}
		return &SQLStore{name: name, dsn: dsn}, nil
	})
}

// SQLStore is a SQLite backed section.
type SQLStore struct {
	name string
	dsn  string
	db   *sql.DB
}

func (s *SQLStore) Name() string   { return s.name }
func (s *SQLStore) Driver() string { return "sqlite" }

// Connect opens and pings the database.
func (s *SQLStore) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite3", s.dsn)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", s.dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping sqlite %s: %w", s.dsn, err)
	}
	s.db = db
	return nil
}

func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying connection pool for commands that declared this
// section.
func (s *SQLStore) DB() *sql.DB { return s.db }
