package postgresql

import (
	"context"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `
	id, name, date, description, created_by, affected_attendance,
	created_at, updated_at
`

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(
		&h.ID, &h.Name, &h.Date, &h.Description, &h.CreatedBy, &h.AffectedAttendance,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return holiday.Holiday{}, err
	}
	return h, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holidays (id, name, date, description, created_by, affected_attendance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	h.ID = uuid.NewString()
	if h.AffectedAttendance == nil {
		h.AffectedAttendance = []string{}
	}
	err := q.QueryRow(ctx, query,
		h.ID, h.Name, h.Date, h.Description, h.CreatedBy, h.AffectedAttendance,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "holidays_date_key") {
			return holiday.Holiday{}, holiday.ErrDuplicateDate
		}
		return holiday.Holiday{}, err
	}
	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`

	h, err := scanHoliday(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, err
	}
	return h, nil
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE date = $1`

	h, err := scanHoliday(q.QueryRow(ctx, query, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// ListByDateRange implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByDateRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + holidayColumns + ` FROM holidays ORDER BY date`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE holidays
		SET name = $2, date = $3, description = $4, affected_attendance = $5, updated_at = NOW()
		WHERE id = $1
	`

	if h.AffectedAttendance == nil {
		h.AffectedAttendance = []string{}
	}
	commandTag, err := q.Exec(ctx, query,
		h.ID, h.Name, h.Date, h.Description, h.AffectedAttendance,
	)
	if err != nil {
		if isUniqueViolation(err, "holidays_date_key") {
			return holiday.ErrDuplicateDate
		}
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

func collectHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}
