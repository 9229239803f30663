package postgresql

import (
	"context"

	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, email, shift_type, scheduled_start, scheduled_end,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Email, &e.ShiftType, &e.ScheduledStart, &e.ScheduledEnd,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	balances, err := r.listBalances(ctx, e.ID)
	if err != nil {
		return employee.Employee{}, err
	}
	e.Balances = balances

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, email, shift_type, scheduled_start, scheduled_end,
			   created_at, updated_at
		FROM employees
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.ShiftType, &e.ScheduledStart, &e.ScheduledEnd,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		balances, err := r.listBalances(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
		employees[i].Balances = balances
	}

	return employees, nil
}

func (r *employeeRepositoryImpl) listBalances(ctx context.Context, employeeID string) ([]employee.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT employee_id, leave_type_id, allowed_leaves, current_balance
		FROM employee_leave_balances
		WHERE employee_id = $1
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []employee.LeaveBalance
	for rows.Next() {
		var b employee.LeaveBalance
		if err := rows.Scan(&b.EmployeeID, &b.LeaveTypeID, &b.AllowedLeaves, &b.CurrentBalance); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// GetBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetBalance(ctx context.Context, employeeID, leaveTypeID string) (employee.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT employee_id, leave_type_id, allowed_leaves, current_balance
		FROM employee_leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	var b employee.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&b.EmployeeID, &b.LeaveTypeID, &b.AllowedLeaves, &b.CurrentBalance,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.LeaveBalance{}, employee.ErrBalanceNotFound
		}
		return employee.LeaveBalance{}, err
	}
	return b, nil
}

// CreateBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateBalance(ctx context.Context, balance employee.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO employee_leave_balances (employee_id, leave_type_id, allowed_leaves, current_balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, leave_type_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.AllowedLeaves, balance.CurrentBalance,
	)
	return err
}

// UpdateBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateBalance(ctx context.Context, balance employee.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employee_leave_balances
		SET allowed_leaves = $3, current_balance = $4
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	commandTag, err := q.Exec(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.AllowedLeaves, balance.CurrentBalance,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrBalanceNotFound
	}
	return nil
}

// DeleteBalancesForType implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DeleteBalancesForType(ctx context.Context, leaveTypeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM employee_leave_balances WHERE leave_type_id = $1`, leaveTypeID)
	return err
}
