package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrations embed.FS

const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "postgres"
)

type DB struct {
	*sql.DB
	dialect string
	log     zerolog.Logger
}

// New opens the database behind databaseURL. postgres:// URLs use lib/pq,
// anything else is treated as a SQLite file path (an optional sqlite3://
// prefix is stripped).
func New(databaseURL string, log zerolog.Logger) (*DB, error) {
	driver, dsn := dialectSQLite, strings.TrimPrefix(databaseURL, "sqlite3://")
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		driver, dsn = dialectPostgres, databaseURL
	}

	if driver == dialectSQLite && !strings.Contains(dsn, "?") {
		// Wait for the single SQLite writer instead of failing with
		// "database is locked".
		dsn += "?_busy_timeout=5000"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close() // Ignore close error, we're already returning ping error
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, dialect: driver, log: log}, nil
}

// Dialect returns the goose/sql dialect name.
func (db *DB) Dialect() string {
	return db.dialect
}

func (db *DB) Migrate() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{db.log})

	if err := goose.SetDialect(db.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations/"+db.dialect); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// rebind rewrites ? placeholders to $N for postgres.
func (db *DB) rebind(query string) string {
	if db.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// gooseLogger sends goose output through zerolog.
type gooseLogger struct {
	log zerolog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(strings.TrimSpace(format), v...)
}
