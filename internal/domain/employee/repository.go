package employee

import (
	"context"
)

// EmployeeRepository reads the externally-managed employee directory and
// mutates only leave balances.
type EmployeeRepository interface {
	// GetByID retrieves an employee with their leave balances loaded
	GetByID(ctx context.Context, id string) (Employee, error)

	// List retrieves all employees with their leave balances loaded
	List(ctx context.Context) ([]Employee, error)

	// GetBalance retrieves one employee's balance for one leave type.
	// Returns ErrBalanceNotFound when the pair has no row.
	GetBalance(ctx context.Context, employeeID, leaveTypeID string) (LeaveBalance, error)

	// CreateBalance inserts a balance row for an employee/leave-type pair
	CreateBalance(ctx context.Context, balance LeaveBalance) error

	// UpdateBalance persists allowed_leaves and current_balance for the pair
	UpdateBalance(ctx context.Context, balance LeaveBalance) error

	// DeleteBalancesForType removes every employee's balance row for a leave type
	DeleteBalancesForType(ctx context.Context, leaveTypeID string) error
}
