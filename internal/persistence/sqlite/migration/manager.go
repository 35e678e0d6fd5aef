package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
)

// Runner orchestrates scanning and applying pending migrations.
type Runner struct {
	executor *Executor
	fsys     fs.FS
	dir      string
	logger   *slog.Logger
}

// NewRunner returns a runner applying the migrations found in dir of fsys.
func NewRunner(db *sql.DB, fsys fs.FS, dir string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		executor: NewExecutor(db),
		fsys:     fsys,
		dir:      dir,
		logger:   logger.With("component", "migration"),
	}
}

// Run applies every pending migration in version order. It stops at the first failure.
func (r *Runner) Run(ctx context.Context) error {
	status, err := r.Status(ctx)
	if err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "migration status",
		"current_version", status.CurrentVersion,
		"pending_count", len(status.Pending),
	)

	for i, m := range status.Pending {
		logger := r.logger.With("version", m.Version, "description", m.Description)
		if err := r.executor.Apply(ctx, m); err != nil {
			logger.ErrorContext(ctx, "migration failed", "error", err)
			return fileError(m.Version, m.FilePath, "execute migration", fmt.Errorf("%w: %w", ErrMigrationFailed, err))
		}
		logger.InfoContext(ctx, "migration applied", "position", i+1, "total", len(status.Pending))
	}
	return nil
}

// Status reports applied and pending migrations.
func (r *Runner) Status(ctx context.Context) (Status, error) {
	if err := r.executor.InitializeVersionTable(ctx); err != nil {
		return Status{}, fmt.Errorf("initialize version table: %w", err)
	}

	available, err := Scan(r.fsys, r.dir)
	if err != nil {
		return Status{}, err
	}
	applied, err := r.executor.AppliedVersions(ctx)
	if err != nil {
		return Status{}, err
	}

	known := make(map[string]struct{}, len(available))
	for _, m := range available {
		known[m.Version] = struct{}{}
	}

	done := make(map[string]struct{}, len(applied))
	status := Status{Applied: applied}
	for _, a := range applied {
		if _, ok := known[a.Version]; !ok {
			return Status{}, fmt.Errorf("%w: version %s is applied but has no migration file", ErrVersionConflict, a.Version)
		}
		done[a.Version] = struct{}{}
		status.CurrentVersion = a.Version
	}
	for _, m := range available {
		if _, ok := done[m.Version]; !ok {
			status.Pending = append(status.Pending, m)
		}
	}
	return status, nil
}
