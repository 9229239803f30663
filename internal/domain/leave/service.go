package leave

import (
	"context"
)

// LeaveService handles leave request submission and the approval state
// machine.
type LeaveService interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)
	UpdateStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	List(ctx context.Context) ([]LeaveRequestResponse, error)
}

// LeaveTypeService manages leave types and keeps every employee's balances in
// step with them.
type LeaveTypeService interface {
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeleteType(ctx context.Context, id string) error
	GetType(ctx context.Context, id string) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
}
