package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access methods for holidays.
type HolidayRepository interface {
	// Create creates a new holiday
	Create(ctx context.Context, holiday Holiday) (Holiday, error)

	// GetByID retrieves a holiday by ID
	GetByID(ctx context.Context, id string) (Holiday, error)

	// GetByDate retrieves the holiday on a given date.
	// Returns (nil, nil) when no holiday exists on the date.
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)

	// ListByDateRange retrieves holidays within [start, end] inclusive
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Holiday, error)

	// List retrieves all holidays ordered by date
	List(ctx context.Context) ([]Holiday, error)

	// Update persists name, date, description and affected_attendance
	Update(ctx context.Context, holiday Holiday) error

	// Delete removes a holiday
	Delete(ctx context.Context, id string) error
}
