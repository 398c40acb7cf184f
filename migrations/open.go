package migrations

import (
	"context"
	"database/sql"
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-social/pkg/logging"
)

// Supported dialect names.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Open connects to the configured database, runs every registered migration
// for its dialect and returns the Bun handle owned by the persistence client.
func Open(ctx context.Context, cfg persistence.Config, logger *logging.Logger) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("migrations: persistence config required")
	}
	if logger == nil {
		logger = logging.New(nil)
	}
	sqldb, dialect, err := openSQL(cfg.GetDriver(), cfg.GetServer())
	if err != nil {
		return nil, err
	}

	client, err := persistence.New(cfg, sqldb, dialect)
	if err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("migrations: persistence client: %w", err)
	}

	for _, fsys := range Filesystems() {
		client.RegisterDialectMigrations(
			fsys,
			persistence.WithDialectSourceLabel("."),
			persistence.WithValidationTargets(DialectPostgres, DialectSQLite),
		)
	}

	if err := client.ValidateDialects(ctx); err != nil {
		logger.Info("migration dialect validation failed", "error", err.Error())
	}

	if err := client.Migrate(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("migrations: migrate: %w", err)
	}

	if report := client.Report(); report != nil && !report.IsZero() {
		logger.Debug("migrations applied", "report", report.String())
	}
	return client.DB(), nil
}

func openSQL(driver, conn string) (*sql.DB, schema.Dialect, error) {
	switch driver {
	case DialectSQLite, "sqlite3":
		sqldb, err := sql.Open("sqlite3", conn)
		if err != nil {
			return nil, nil, fmt.Errorf("migrations: open sqlite: %w", err)
		}
		// :memory: databases are per connection
		sqldb.SetMaxOpenConns(1)
		return sqldb, sqlitedialect.New(), nil
	case DialectPostgres, "pgx":
		sqldb, err := sql.Open("pgx", conn)
		if err != nil {
			return nil, nil, fmt.Errorf("migrations: open postgres: %w", err)
		}
		return sqldb, pgdialect.New(), nil
	default:
		return nil, nil, fmt.Errorf("migrations: unsupported driver %q", driver)
	}
}
