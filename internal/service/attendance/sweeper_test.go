package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
)

// lastWorkingDay returns the most recent working day strictly before today.
func (f *attendanceFixture) lastWorkingDay() time.Time {
	d := f.cal.Today().AddDate(0, 0, -1)
	for f.cal.IsNonWorkingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// lastWeekendDay returns the most recent weekend day strictly before today.
func (f *attendanceFixture) lastWeekendDay() time.Time {
	d := f.cal.Today().AddDate(0, 0, -1)
	for !f.cal.IsNonWorkingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func TestAttendanceService_MarkAbsencesForDate(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	sweepDate := f.lastWorkingDay()

	present := f.seedEmployee(employee.ShiftDay, "09:00")
	onLeave := f.seedEmployee(employee.ShiftDay, "09:00")
	missing := f.seedEmployee(employee.ShiftDay, "09:00")

	f.attendanceRepo.Seed(attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: present.ID,
		Date:       sweepDate,
		Status:     attendance.StatusOnTime,
	})
	f.leaveRepo.Seed(leave.LeaveRequest{
		EmployeeID: onLeave.ID,
		StartDate:  sweepDate,
		EndDate:    sweepDate,
		Status:     leave.StatusApproved,
	})

	result, err := f.svc.MarkAbsencesForDate(ctx, attendance.MarkAbsencesRequest{
		Date: f.cal.DateKey(sweepDate),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.MarkedAbsent)
	assert.Equal(t, []string{missing.ID}, result.EmployeeIDs)

	record, err := f.attendanceRepo.GetByEmployeeAndDate(ctx, missing.ID, sweepDate)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusAbsence, record.Status)
	assert.Nil(t, record.TimeIn)
}

func TestAttendanceService_MarkAbsencesForDate_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	sweepDate := f.lastWorkingDay()
	f.seedEmployee(employee.ShiftDay, "09:00")

	req := attendance.MarkAbsencesRequest{Date: f.cal.DateKey(sweepDate)}

	first, err := f.svc.MarkAbsencesForDate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.MarkedAbsent)

	second, err := f.svc.MarkAbsencesForDate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.MarkedAbsent)
	assert.Equal(t, 1, f.attendanceRepo.Count())
}

func TestAttendanceService_MarkAbsencesForDate_FutureDate(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	tomorrow := f.cal.Today().AddDate(0, 0, 1)

	_, err := f.svc.MarkAbsencesForDate(ctx, attendance.MarkAbsencesRequest{
		Date: f.cal.DateKey(tomorrow),
	})
	assert.ErrorIs(t, err, attendance.ErrFutureDate)
}

func TestAttendanceService_MarkAbsencesForDate_Weekend(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()

	_, err := f.svc.MarkAbsencesForDate(ctx, attendance.MarkAbsencesRequest{
		Date: f.cal.DateKey(f.lastWeekendDay()),
	})
	assert.ErrorIs(t, err, attendance.ErrNonWorkingDay)
}

func TestAttendanceService_MarkAbsencesForDate_Holiday(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	sweepDate := f.lastWorkingDay()
	f.holidayRepo.Seed(holiday.Holiday{Name: "Eid", Date: sweepDate})

	_, err := f.svc.MarkAbsencesForDate(ctx, attendance.MarkAbsencesRequest{
		Date: f.cal.DateKey(sweepDate),
	})
	assert.ErrorIs(t, err, attendance.ErrHolidayDate)
}

func TestAttendanceService_MarkAbsencesForMonth(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	emp := f.seedEmployee(employee.ShiftDay, "09:00")

	today := f.cal.Today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, f.cal.Location()).AddDate(0, -1, 0)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var workingDays []time.Time
	for _, d := range f.cal.DateRange(monthStart, monthEnd) {
		if !f.cal.IsNonWorkingDay(d) {
			workingDays = append(workingDays, d)
		}
	}
	require.NotEmpty(t, workingDays)

	// One day already recorded, one covered by an approved leave.
	f.attendanceRepo.Seed(attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Date:       workingDays[0],
		Status:     attendance.StatusOnTime,
	})
	f.leaveRepo.Seed(leave.LeaveRequest{
		EmployeeID: emp.ID,
		StartDate:  workingDays[1],
		EndDate:    workingDays[1],
		Status:     leave.StatusApproved,
	})

	result, err := f.svc.MarkAbsencesForMonth(ctx, attendance.MarkMonthAbsencesRequest{
		EmployeeID: emp.ID,
		Month:      monthStart.Format("2006-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, len(workingDays)-2, result.MarkedAbsent)
}

func TestAttendanceService_MarkAbsencesForMonth_SkipsHolidays(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	emp := f.seedEmployee(employee.ShiftDay, "09:00")

	today := f.cal.Today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, f.cal.Location()).AddDate(0, -1, 0)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var workingDays []time.Time
	for _, d := range f.cal.DateRange(monthStart, monthEnd) {
		if !f.cal.IsNonWorkingDay(d) {
			workingDays = append(workingDays, d)
		}
	}
	require.NotEmpty(t, workingDays)
	f.holidayRepo.Seed(holiday.Holiday{Name: "Eid", Date: workingDays[0]})

	result, err := f.svc.MarkAbsencesForMonth(ctx, attendance.MarkMonthAbsencesRequest{
		EmployeeID: emp.ID,
		Month:      monthStart.Format("2006-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, len(workingDays)-1, result.MarkedAbsent)
}

func TestAttendanceService_MarkAbsencesForMonth_FutureMonth(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()
	emp := f.seedEmployee(employee.ShiftDay, "09:00")

	nextMonth := f.cal.Today().AddDate(0, 2, 0)

	_, err := f.svc.MarkAbsencesForMonth(ctx, attendance.MarkMonthAbsencesRequest{
		EmployeeID: emp.ID,
		Month:      nextMonth.Format("2006-01"),
	})
	assert.ErrorIs(t, err, attendance.ErrFutureMonth)
}

func TestAttendanceService_MarkAbsencesForMonth_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture()

	monthStart := f.cal.Today().AddDate(0, -1, 0)

	_, err := f.svc.MarkAbsencesForMonth(ctx, attendance.MarkMonthAbsencesRequest{
		EmployeeID: uuid.NewString(),
		Month:      monthStart.Format("2006-01"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
