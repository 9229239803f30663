package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/calendar"
	"github.com/digihr/attendance-backend-go/internal/service/servicetest"
)

type leaveFixture struct {
	svc            *LeaveServiceImpl
	typeSvc        *LeaveTypeServiceImpl
	cal            *calendar.Calendar
	leaveRepo      *servicetest.MemoryLeaveRequestRepository
	typeRepo       *servicetest.MemoryLeaveTypeRepository
	attendanceRepo *servicetest.MemoryAttendanceRepository
	employeeRepo   *servicetest.MemoryEmployeeRepository
	holidayRepo    *servicetest.MemoryHolidayRepository
}

func newLeaveFixture() *leaveFixture {
	f := &leaveFixture{
		cal:            calendar.MustNew(calendar.DefaultTimeZone),
		leaveRepo:      servicetest.NewMemoryLeaveRequestRepository(),
		typeRepo:       servicetest.NewMemoryLeaveTypeRepository(),
		attendanceRepo: servicetest.NewMemoryAttendanceRepository(),
		employeeRepo:   servicetest.NewMemoryEmployeeRepository(),
		holidayRepo:    servicetest.NewMemoryHolidayRepository(),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewLeaveService(
		servicetest.NoopUnitOfWork{}, f.cal, log,
		f.leaveRepo, f.typeRepo, f.attendanceRepo, f.employeeRepo, f.holidayRepo,
	)
	f.typeSvc = NewLeaveTypeService(
		servicetest.NoopUnitOfWork{}, log,
		f.typeRepo, f.leaveRepo, f.employeeRepo,
	)
	return f
}

func (f *leaveFixture) seedEmployee() employee.Employee {
	return f.employeeRepo.SeedEmployee(employee.Employee{
		ID:        uuid.NewString(),
		Name:      "Test Employee",
		Email:     "employee@example.com",
		ShiftType: employee.ShiftDay,
	})
}

func (f *leaveFixture) seedType(name string, allowed int) leave.LeaveType {
	return f.typeRepo.Seed(leave.LeaveType{
		Name:          name,
		AllowedLeaves: allowed,
		Status:        leave.TypeActive,
	})
}

func (f *leaveFixture) seedBalance(empID, typeID string, allowed, current int) {
	f.employeeRepo.SeedBalance(employee.LeaveBalance{
		EmployeeID:     empID,
		LeaveTypeID:    typeID,
		AllowedLeaves:  allowed,
		CurrentBalance: current,
	})
}

// nextMonday returns the first Monday strictly after today.
func (f *leaveFixture) nextMonday() time.Time {
	d := f.cal.Today().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestLeaveService_CreateRequest(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)

	monday := f.nextMonday()
	friday := monday.AddDate(0, 0, 4)

	resp, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(friday),
		Reason:      "family matters",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 5, resp.CalculatedDays)
	assert.Equal(t, 5, resp.TotalDaysOfLeavePeriod)
	assert.Equal(t, "Annual", resp.LeaveTypeName)
	assert.Empty(t, resp.Weekends)
	assert.Empty(t, resp.SkippedDates)
	assert.Empty(t, resp.AffectedAttendance)

	// Submission only projects; the balance is untouched until approval.
	balance, err := f.employeeRepo.GetBalance(ctx, emp.ID, lt.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.CurrentBalance)
}

func TestLeaveService_CreateRequest_ExcludesWeekends(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 20)
	f.seedBalance(emp.ID, lt.ID, 20, 20)

	monday := f.nextMonday()
	end := monday.AddDate(0, 0, 7) // spans one weekend, ends the next Monday

	expectedWeekends := 0
	for _, d := range f.cal.DateRange(monday, end) {
		if f.cal.IsNonWorkingDay(d) {
			expectedWeekends++
		}
	}

	resp, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(end),
		Reason:      "travel",
	})

	require.NoError(t, err)
	assert.Equal(t, 8, resp.TotalDaysOfLeavePeriod)
	assert.Equal(t, 8-expectedWeekends, resp.CalculatedDays)
	assert.Len(t, resp.Weekends, expectedWeekends)
}

func TestLeaveService_CreateRequest_ExcludesHolidays(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)

	monday := f.nextMonday()
	wednesday := monday.AddDate(0, 0, 2)
	hol := f.holidayRepo.Seed(holiday.Holiday{Name: "Eid", Date: wednesday})

	resp, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(monday.AddDate(0, 0, 4)),
		Reason:      "rest",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.CalculatedDays)
	assert.Equal(t, []string{hol.ID}, resp.Holidays)
}

func TestLeaveService_CreateRequest_SkipsCoveredDays(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)

	monday := f.nextMonday()
	tuesday := monday.AddDate(0, 0, 1)
	f.leaveRepo.Seed(leave.LeaveRequest{
		EmployeeID: emp.ID,
		StartDate:  tuesday,
		EndDate:    tuesday,
		Status:     leave.StatusApproved,
	})

	resp, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(monday.AddDate(0, 0, 4)),
		Reason:      "rest",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.CalculatedDays)
	assert.Equal(t, []string{f.cal.DateKey(tuesday)}, resp.SkippedDates)
}

func TestLeaveService_CreateRequest_InvalidRange(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)

	monday := f.nextMonday()

	_, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(monday.AddDate(0, 0, -1)),
		Reason:      "rest",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_CreateRequest_PastDate(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)

	yesterday := f.cal.Today().AddDate(0, 0, -1)

	_, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(yesterday),
		EndDate:     f.cal.DateKey(f.cal.Today()),
		Reason:      "rest",
	})
	assert.ErrorIs(t, err, leave.ErrPastDate)
}

func TestLeaveService_CreateRequest_NoEligibleDays(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)

	sunday := f.nextMonday().AddDate(0, 0, 6)

	_, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(sunday),
		EndDate:     f.cal.DateKey(sunday),
		Reason:      "rest",
	})
	assert.ErrorIs(t, err, leave.ErrNoEligibleDays)
}

func TestLeaveService_CreateRequest_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 3)

	monday := f.nextMonday()

	_, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(monday.AddDate(0, 0, 4)),
		Reason:      "rest",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestLeaveService_CreateRequest_UnknownType(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	monday := f.nextMonday()

	_, err := f.svc.CreateRequest(ctx, leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: uuid.NewString(),
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(monday),
		Reason:      "rest",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func (f *leaveFixture) createPendingWeek(t *testing.T, emp employee.Employee, lt leave.LeaveType) leave.LeaveRequestResponse {
	t.Helper()
	monday := f.nextMonday()
	resp, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   f.cal.DateKey(monday),
		EndDate:     f.cal.DateKey(monday.AddDate(0, 0, 4)),
		Reason:      "family matters",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_UpdateStatus_Approve(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	resp, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusApproved,
		ApprovedBy: uuid.NewString(),
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Equal(t, 5, resp.CalculatedDays)
	assert.Len(t, resp.AffectedAttendance, 5)

	// A ledger record exists for every billed day, with no history to revert.
	monday := f.nextMonday()
	for i := 0; i < 5; i++ {
		record, err := f.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, monday.AddDate(0, 0, i))
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, attendance.StatusOnLeave, record.Status)
		assert.Empty(t, record.PreviousAttendance)
	}

	balance, err := f.employeeRepo.GetBalance(ctx, emp.ID, lt.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.CurrentBalance)
}

func TestLeaveService_UpdateStatus_Approve_OverridesExistingRecord(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	monday := f.nextMonday()
	timeIn := monday.Add(9 * time.Hour)
	seeded := f.attendanceRepo.Seed(attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Date:       monday,
		TimeIn:     &timeIn,
		Status:     attendance.StatusLate,
		LateBy:     30,
	})

	resp, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusApproved,
		ApprovedBy: uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Contains(t, resp.AffectedAttendance, seeded.ID)

	record, err := f.attendanceRepo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, record.Status)
	assert.Nil(t, record.TimeIn)
	assert.Equal(t, 0, record.LateBy)
	require.Len(t, record.PreviousAttendance, 1)
	assert.Equal(t, attendance.StatusLate, record.PreviousAttendance[0].Status)
	assert.Equal(t, 30, record.PreviousAttendance[0].LateBy)
}

func TestLeaveService_UpdateStatus_Approve_AllDaysTerminal(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	monday := f.nextMonday()
	for i := 0; i < 5; i++ {
		f.attendanceRepo.Seed(attendance.Attendance{
			ID:         uuid.NewString(),
			EmployeeID: emp.ID,
			Date:       monday.AddDate(0, 0, i),
			Status:     attendance.StatusHoliday,
		})
	}

	_, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusApproved,
		ApprovedBy: uuid.NewString(),
	})
	assert.ErrorIs(t, err, leave.ErrNoEligibleDays)
}

func TestLeaveService_UpdateStatus_Approve_BalanceDrained(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	// Balance spent elsewhere between submission and approval.
	f.seedBalance(emp.ID, lt.ID, 10, 2)

	_, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusApproved,
		ApprovedBy: uuid.NewString(),
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestLeaveService_UpdateStatus_RejectPending(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	resp, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusRejected,
		ApprovedBy: uuid.NewString(),
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.Equal(t, 0, f.attendanceRepo.Count())

	balance, err := f.employeeRepo.GetBalance(ctx, emp.ID, lt.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.CurrentBalance)
}

func TestLeaveService_UpdateStatus_RejectApproved_RevertsLedger(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	monday := f.nextMonday()
	seeded := f.attendanceRepo.Seed(attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Date:       monday,
		Status:     attendance.StatusLate,
		LateBy:     15,
	})

	approvedBy := uuid.NewString()
	_, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusApproved,
		ApprovedBy: approvedBy,
	})
	require.NoError(t, err)

	resp, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusRejected,
		ApprovedBy: approvedBy,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.Equal(t, 0, resp.CalculatedDays)
	assert.Empty(t, resp.AffectedAttendance)

	// Records created by the approval are gone; the overridden one is restored.
	assert.Equal(t, 1, f.attendanceRepo.Count())
	record, err := f.attendanceRepo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, record.Status)
	assert.Equal(t, 15, record.LateBy)
	assert.Empty(t, record.PreviousAttendance)

	balance, err := f.employeeRepo.GetBalance(ctx, emp.ID, lt.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.CurrentBalance)
}

func TestLeaveService_UpdateStatus_AlreadyApproved(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	req := leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusApproved,
		ApprovedBy: uuid.NewString(),
	}
	_, err := f.svc.UpdateStatus(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, req)
	assert.ErrorIs(t, err, leave.ErrAlreadyApproved)
}

func TestLeaveService_UpdateStatus_AlreadyRejected(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	emp := f.seedEmployee()
	lt := f.seedType("Annual", 10)
	f.seedBalance(emp.ID, lt.ID, 10, 10)
	pending := f.createPendingWeek(t, emp, lt)

	req := leave.UpdateLeaveStatusRequest{
		ID:         pending.ID,
		Status:     leave.StatusRejected,
		ApprovedBy: uuid.NewString(),
	}
	_, err := f.svc.UpdateStatus(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, req)
	assert.ErrorIs(t, err, leave.ErrAlreadyRejected)
}

func TestLeaveService_UpdateStatus_UnknownRequest(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()

	_, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{
		ID:         uuid.NewString(),
		Status:     leave.StatusApproved,
		ApprovedBy: uuid.NewString(),
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
