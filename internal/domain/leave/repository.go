package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	// Create creates a new leave request
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a leave request by ID
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Update persists the full mutable state of a leave request
	Update(ctx context.Context, request LeaveRequest) error

	// ListByEmployee retrieves one employee's requests, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// List retrieves all leave requests, newest first
	List(ctx context.Context) ([]LeaveRequest, error)

	// ListApprovedOverlapping retrieves an employee's approved requests whose
	// [start_date, end_date] intersects the given range
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)

	// HasApprovedLeaveOn reports whether the employee has an approved request
	// covering the date
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// FindApprovedCovering retrieves the approved request that owns the given
	// attendance record (listed in affected_attendance) on the given date.
	// Returns (nil, nil) when no request matches.
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time, attendanceID string) (*LeaveRequest, error)

	// SnapshotTypeName stamps the leave type's name onto every historical
	// request of that type, preserving reports across type deletion
	SnapshotTypeName(ctx context.Context, leaveTypeID, name string) error
}

// LeaveTypeRepository defines data access methods for leave types.
type LeaveTypeRepository interface {
	// Create creates a new leave type
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)

	// GetByID retrieves a leave type by ID
	GetByID(ctx context.Context, id string) (LeaveType, error)

	// GetByName retrieves a leave type by its unique name.
	// Returns (nil, nil) when no type matches.
	GetByName(ctx context.Context, name string) (*LeaveType, error)

	// Update persists name, allowed_leaves and status
	Update(ctx context.Context, leaveType LeaveType) error

	// Delete removes a leave type
	Delete(ctx context.Context, id string) error

	// List retrieves all leave types
	List(ctx context.Context) ([]LeaveType, error)
}
