package social

import "embed"

// MigrationsFS contains the SQL schema for the persistent community store.
//
// Root files (data/sql/migrations/*.sql) target PostgreSQL. SQLite variants
// live in data/sql/migrations/sqlite/*.sql. The migrations package applies
// the set matching the database dialect.
//
//go:embed data/sql/migrations
var MigrationsFS embed.FS
