package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/repository/postgresql"
)

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	timeIn := time.Date(2025, 3, 3, 9, 5, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID,
		Date:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		TimeIn:     &timeIn,
		Status:     attendance.StatusLate,
		LateBy:     5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, empID, got.EmployeeID)
	assert.Equal(t, "2025-03-03", got.Date.Format("2006-01-02"))
	assert.Equal(t, attendance.StatusLate, got.Status)
	assert.Equal(t, 5, got.LateBy)
	require.NotNil(t, got.TimeIn)
	assert.True(t, timeIn.Equal(*got.TimeIn))
	assert.Nil(t, got.TimeOut)
	assert.Empty(t, got.PreviousAttendance)
}

func TestAttendanceRepository_Create_DuplicateDate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	record := attendance.Attendance{
		EmployeeID: empID,
		Date:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusOnTime,
	}
	_, err := repo.Create(ctx, record)
	require.NoError(t, err)

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
}

func TestAttendanceRepository_GetByEmployeeAndDate_Missing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	got, err := repo.GetByEmployeeAndDate(ctx, empID, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAttendanceRepository_Update_HistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID,
		Date:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusLate,
		LateBy:     12,
	})
	require.NoError(t, err)

	// Override pushes the old state onto the stack.
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	require.True(t, created.Override(attendance.StatusHoliday, true, 0, now))
	require.NoError(t, repo.Update(ctx, created))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHoliday, stored.Status)
	require.Len(t, stored.PreviousAttendance, 1)
	assert.Equal(t, attendance.StatusLate, stored.PreviousAttendance[0].Status)
	assert.Equal(t, 12, stored.PreviousAttendance[0].LateBy)

	// Revert pops it back off.
	_, ok := stored.Revert()
	require.True(t, ok)
	require.NoError(t, repo.Update(ctx, stored))

	restored, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, restored.Status)
	assert.Equal(t, 12, restored.LateBy)
	assert.Empty(t, restored.PreviousAttendance)
}

func TestAttendanceRepository_ListByIDs(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	var ids []string
	for day := 3; day <= 5; day++ {
		created, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: empID,
			Date:       time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusOnTime,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	records, err := repo.ListByIDs(ctx, ids[:2])
	require.NoError(t, err)
	assert.Len(t, records, 2)

	empty, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAttendanceRepository_ListByEmployeeAndRange(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	for day := 3; day <= 7; day++ {
		_, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: empID,
			Date:       time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusOnTime,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListByEmployeeAndRange(ctx, empID,
		time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-03-04", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-03-06", records[2].Date.Format("2006-01-02"))
}

func TestAttendanceRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)
	empID := createTestEmployee(t, ctx, db)

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID,
		Date:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusAbsence,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.NewString()), attendance.ErrAttendanceNotFound)
}
