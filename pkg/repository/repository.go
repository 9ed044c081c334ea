package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// write retry policy, zero values use defaults
	RetryAttempts     int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	Watched *WatchedRepository
	Ledger  *LedgerRepository
	Action  *ActionRepository
	DB      *sqlx.DB
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:watchmon.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", withPragmas(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	retry := newRetryPolicy(cfg.RetryAttempts, cfg.RetryInitialDelay, cfg.RetryMaxDelay)
	return &Repositories{
		Watched: NewWatchedRepository(db),
		Ledger:  NewLedgerRepository(db, retry),
		Action:  NewActionRepository(db, retry),
		DB:      db,
	}, nil
}

// connPragmas are applied by the driver to every new connection
var connPragmas = []struct{ name, value string }{
	{"foreign_keys", "1"},
	{"journal_mode", "WAL"},
	{"synchronous", "NORMAL"},
	{"temp_store", "MEMORY"},
	{"busy_timeout", "5000"},
}

// withPragmas adds _pragma parameters to the dsn, pragmas already set there are kept
func withPragmas(dsn string) string {
	var params []string
	for _, p := range connPragmas {
		if strings.Contains(dsn, "_pragma="+p.name+"(") {
			continue
		}
		params = append(params, "_pragma="+p.name+"("+p.value+")")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// migrate applies embedded goose migrations
func migrate(ctx context.Context, db *sqlx.DB) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations dir: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, sub)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		lgr.Printf("[DEBUG] applied migration %s in %v", res.Source.Path, res.Duration)
	}
	return nil
}
