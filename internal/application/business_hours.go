package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/appointment-booking/internal/availability"
	"github.com/example/appointment-booking/internal/persistence"
)

// BusinessHoursTable serves the weekly opening hours.
type BusinessHoursTable struct {
	hours  *persistence.Document[[]BusinessHours]
	logger *slog.Logger
}

// NewBusinessHoursTable constructs a table stored under persistence.KeyBusinessHours.
func NewBusinessHoursTable(store persistence.Store) *BusinessHoursTable {
	return NewBusinessHoursTableWithLogger(store, nil)
}

// NewBusinessHoursTableWithLogger constructs a table with a specified logger.
func NewBusinessHoursTableWithLogger(store persistence.Store, logger *slog.Logger, opts ...persistence.Option) *BusinessHoursTable {
	return &BusinessHoursTable{
		hours:  persistence.NewDocument(store, persistence.KeyBusinessHours, DefaultBusinessHours, opts...),
		logger: defaultLogger(logger),
	}
}

// Load reads the hours from the store, seeding them when absent. On failure
// the default hours are served and the error is returned alongside them.
func (t *BusinessHoursTable) Load(ctx context.Context) ([]BusinessHours, error) {
	hours, err := t.hours.Load(ctx)
	if err != nil {
		logger := serviceLogger(ctx, t.logger, "BusinessHoursTable", "Load")
		logger.ErrorContext(ctx, "failed to load business hours", "error", err, "error_kind", ErrorKind(err))
	}
	return cloneHours(hours), err
}

// Hours returns the table in stored order.
func (t *BusinessHoursTable) Hours() []BusinessHours {
	return cloneHours(t.hours.Value())
}

// ForWeekday returns the entry for weekday, if the table has one.
func (t *BusinessHoursTable) ForWeekday(weekday time.Weekday) (BusinessHours, bool) {
	return availability.HoursFor(t.hours.Value(), weekday)
}

func cloneHours(hours []BusinessHours) []BusinessHours {
	out := make([]BusinessHours, len(hours))
	copy(out, hours)
	return out
}
