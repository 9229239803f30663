package postgresql

import (
	"context"

	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_types (id, name, allowed_leaves, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	leaveType.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.AllowedLeaves, leaveType.Status,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "leave_types_name_key") {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveType{}, err
	}
	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, allowed_leaves, status, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.AllowedLeaves, &lt.Status, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// GetByName implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByName(ctx context.Context, name string) (*leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, allowed_leaves, status, created_at, updated_at
		FROM leave_types
		WHERE name = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, name).Scan(
		&lt.ID, &lt.Name, &lt.AllowedLeaves, &lt.Status, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &lt, nil
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_types
		SET name = $2, allowed_leaves = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.AllowedLeaves, leaveType.Status,
	)
	if err != nil {
		if isUniqueViolation(err, "leave_types_name_key") {
			return leave.ErrLeaveTypeExists
		}
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

// Delete implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, allowed_leaves, status, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaveTypes []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.AllowedLeaves, &lt.Status, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaveTypes, nil
}
