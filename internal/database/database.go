package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/mundialito/internal/config"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Dialect identifies the SQL flavour spoken by the opened connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectTurso    Dialect = "turso"
	DialectPostgres Dialect = "postgres"
)

// Open initializes the store selected by cfg.DBDriver.
func Open(cfg config.Config) (*sql.DB, Dialect, func(), error) {
	switch cfg.DBDriver {
	case "pgx", "postgres":
		db, teardown, err := InitPostgres(cfg.DatabaseURL, cfg.MigrationsDir)
		return db, DialectPostgres, teardown, err
	case "libsql", "sqlite3", "":
		db, teardown, err := InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
		if cfg.Turso.PrimaryURL != "" {
			return db, DialectTurso, teardown, err
		}
		return db, DialectSQLite, teardown, err
	default:
		return nil, "", nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// InitDB initializes the database and ensures the schema is up to date.
// For local-only databases dbPath is the filename (":memory:" works for tests);
// when primaryUrl is set the Turso remote is used instead.
func InitDB(dbPath string, primaryUrl string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// SQLite only supports one writer, and every :memory: connection is a separate database.
		db.SetMaxOpenConns(1)
		// Foreign key support is not enabled by default in SQLite
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if err := migrate(db, DialectSQLite, migrationsDir); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate local db: %w", err)
		}
		return db, teardownFor(db), nil
	}

	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err := migrate(db, DialectTurso, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate remote db: %w", err)
	}
	return db, teardownFor(db), nil
}

// InitPostgres opens a Postgres database through the pgx stdlib driver.
func InitPostgres(dsn string, migrationsDir string) (*sql.DB, func(), error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
	}
	log.Info("Initializing Postgres database")
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if err := migrate(db, DialectPostgres, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}
	return db, teardownFor(db), nil
}

func migrate(db *sql.DB, dialect Dialect, migrationsDir string) error {
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return err
	}
	log.Info("Database initialized successfully", "dialect", dialect)
	return nil
}

func teardownFor(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
}
