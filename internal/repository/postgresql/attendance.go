package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.time_in, a.time_out,
	a.status, a.late_by, a.total_hours, a.leave_converted_to_holiday_count,
	a.previous_attendance, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	var historyJSON []byte

	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.TimeIn, &a.TimeOut,
		&a.Status, &a.LateBy, &a.TotalHours, &a.LeaveConvertedToHoliday,
		&historyJSON, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if historyJSON != nil {
		if err := json.Unmarshal(historyJSON, &a.PreviousAttendance); err != nil {
			return attendance.Attendance{}, fmt.Errorf("decode attendance history: %w", err)
		}
	}

	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	historyJSON, _ := json.Marshal(a.PreviousAttendance)
	if a.PreviousAttendance == nil {
		historyJSON = []byte("[]")
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, time_in, time_out,
			status, late_by, total_hours, leave_converted_to_holiday_count,
			previous_attendance, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	a.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Date, a.TimeIn, a.TimeOut,
		a.Status, a.LateBy, a.TotalHours, a.LeaveConvertedToHoliday,
		historyJSON,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "attendances_employee_id_date_key") {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
		return attendance.Attendance{}, err
	}

	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.id = $1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	historyJSON, _ := json.Marshal(a.PreviousAttendance)
	if a.PreviousAttendance == nil {
		historyJSON = []byte("[]")
	}

	query := `
		UPDATE attendances
		SET time_in = $2, time_out = $3, status = $4, late_by = $5,
			total_hours = $6, leave_converted_to_holiday_count = $7,
			previous_attendance = $8, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		a.ID, a.TimeIn, a.TimeOut, a.Status, a.LateBy,
		a.TotalHours, a.LeaveConvertedToHoliday, historyJSON,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByIDs implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByIDs(ctx context.Context, ids []string) ([]attendance.Attendance, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		ORDER BY a.date DESC, a.employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
