package migration

import (
	"errors"
	"fmt"
)

var (
	ErrMigrationFailed      = errors.New("migration: execution failed")
	ErrInvalidMigrationFile = errors.New("migration: malformed file")
	ErrDuplicateVersion     = errors.New("migration: duplicate version")
	// ErrVersionConflict means the database records versions no file provides.
	ErrVersionConflict = errors.New("migration: database is ahead of the migration files")
)

// StepError records which step of which migration failed. Source is the file
// for scanning problems and the table touched for database problems.
type StepError struct {
	Version string
	Source  string
	Step    string
	Err     error
}

func (e *StepError) Error() string {
	where := e.Source
	if e.Version != "" {
		where = e.Version + " " + e.Source
	}
	return fmt.Sprintf("migration %s: %s: %v", where, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func fileError(version, path, step string, err error) error {
	return &StepError{Version: version, Source: path, Step: step, Err: err}
}

func dbError(version, step string, err error) error {
	return &StepError{Version: version, Source: "schema_migrations", Step: step, Err: err}
}
