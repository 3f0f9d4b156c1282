// Package state provides relational persistence for the dashboard.
// It implements core.Repository on top of database/sql and supports
// SQLite (modernc.org/sqlite) and PostgreSQL (pgx) with shared migrations.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/leapstack-labs/shopdash/pkg/core"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Dialect identifies the SQL flavour of the underlying database.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3", "":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (want sqlite or postgres)", driver)
	}
}

// SQLStore implements core.Repository.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

var _ core.Repository = (*SQLStore)(nil)

// NewSQLStore creates a new store instance. Call Open before use.
func NewSQLStore(logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLStore{logger: logger}
}

// NewSQLStoreWithDB wraps an existing connection, e.g. a sqlmock in tests.
func NewSQLStoreWithDB(db *sql.DB, dialect Dialect, logger *slog.Logger) *SQLStore {
	s := NewSQLStore(logger)
	s.db = db
	s.dialect = dialect
	return s
}

// Open opens a connection for the given driver and DSN.
// For SQLite use ":memory:" for an in-memory database.
func (s *SQLStore) Open(driver, dsn string) error {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return err
	}

	var db *sql.DB
	switch dialect {
	case DialectPostgres:
		db, err = sql.Open("pgx", dsn)
	default:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
	}
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// A single connection keeps :memory: databases consistent and serialises writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	s.db = db
	s.dialect = dialect
	s.logger.Debug("database opened", "dialect", dialect)
	return nil
}

// sqliteDSN enables foreign keys and, for files, WAL journaling.
func sqliteDSN(path string) string {
	if path == ":memory:" || path == "" {
		return ":memory:?_pragma=foreign_keys(1)"
	}
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying connection.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Dialect returns the dialect of the open connection.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

func (s *SQLStore) ready() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

// count runs a COUNT(*) query.
func (s *SQLStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// affected returns core.ErrNotFound when a write touched no rows.
func affected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, core.ErrNotFound)
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// now returns the current time truncated for portable storage.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
