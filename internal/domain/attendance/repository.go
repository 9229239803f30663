package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for a specific employee on a
	// specific date. Returns (nil, nil) when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update persists the full mutable state of an attendance record,
	// including the snapshot stack
	Update(ctx context.Context, attendance Attendance) error

	// Delete removes an attendance record
	Delete(ctx context.Context, id string) error

	// ListByEmployee retrieves all records for one employee, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	// ListByEmployeeAndRange retrieves one employee's records within
	// [start, end] inclusive
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListByIDs retrieves records by id set, in no particular order
	ListByIDs(ctx context.Context, ids []string) ([]Attendance, error)

	// List retrieves all attendance records, newest first
	List(ctx context.Context) ([]Attendance, error)
}
