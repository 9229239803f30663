package postgresql

import (
	"context"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type_id, leave_type_name, start_date, end_date,
	reason, status, approved_by, calculated_days, total_days_of_leave_period,
	weekends, holidays, skipped_dates, affected_attendance,
	created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveTypeID, &l.LeaveTypeName, &l.StartDate, &l.EndDate,
		&l.Reason, &l.Status, &l.ApprovedBy, &l.CalculatedDays, &l.TotalDaysOfLeavePeriod,
		&l.Weekends, &l.Holidays, &l.SkippedDates, &l.AffectedAttendance,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return l, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, leave_type_name, start_date, end_date,
			reason, status, approved_by, calculated_days, total_days_of_leave_period,
			weekends, holidays, skipped_dates, affected_attendance,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	request.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveTypeID, request.LeaveTypeName,
		request.StartDate, request.EndDate, request.Reason, request.Status,
		request.ApprovedBy, request.CalculatedDays, request.TotalDaysOfLeavePeriod,
		request.Weekends, request.Holidays, request.SkippedDates, request.AffectedAttendance,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return l, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET leave_type_name = $2, status = $3, approved_by = $4,
			calculated_days = $5, weekends = $6, holidays = $7,
			skipped_dates = $8, affected_attendance = $9, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID, request.LeaveTypeName, request.Status, request.ApprovedBy,
		request.CalculatedDays, request.Weekends, request.Holidays,
		request.SkippedDates, request.AffectedAttendance,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListApprovedOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'Approved'
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// HasApprovedLeaveOn implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status = 'Approved'
			  AND start_date <= $2 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) FindApprovedCovering(ctx context.Context, employeeID string, date time.Time, attendanceID string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'Approved'
		  AND start_date <= $2 AND end_date >= $2
		  AND $3 = ANY(affected_attendance)
		LIMIT 1
	`

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, date, attendanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// SnapshotTypeName implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SnapshotTypeName(ctx context.Context, leaveTypeID, name string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE leave_requests SET leave_type_name = $2, updated_at = NOW() WHERE leave_type_id = $1`,
		leaveTypeID, name,
	)
	return err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
