// Package migration applies versioned SQL migrations to a SQLite database.
//
// Migration files are read from an fs.FS (typically an embed.FS) and follow the
// naming convention {version}_{description}.sql, e.g. "001_kv_store.sql".
// Applied versions are tracked in the schema_migrations table; each migration
// runs inside its own transaction.
//
// Example usage:
//
//	runner := migration.NewRunner(db, migrationsFS, "migrations", logger)
//	if err := runner.Run(ctx); err != nil {
//		return fmt.Errorf("migrate: %w", err)
//	}
package migration
