package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/calendar"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
)

// nightShiftCutoffHour: a night-shift check-in before this local hour belongs
// to the previous calendar day.
const nightShiftCutoffHour = 6

type AttendanceServiceImpl struct {
	uow database.UnitOfWork
	cal *calendar.Calendar
	log *slog.Logger
	attendance.AttendanceRepository
	employee.EmployeeRepository
	leave.LeaveRequestRepository
	holiday.HolidayRepository
}

func NewAttendanceService(
	uow database.UnitOfWork,
	cal *calendar.Calendar,
	log *slog.Logger,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		uow:                    uow,
		cal:                    cal,
		log:                    log,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		LeaveRequestRepository: leaveRepo,
		HolidayRepository:      holidayRepo,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkInAt := time.Now()
	if req.Time != "" {
		checkInAt, _ = time.Parse(time.RFC3339, req.Time)
	}
	checkInLocal := checkInAt.In(s.cal.Location())

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("get employee: %w", err)
	}

	attendanceDate := s.cal.Normalize(checkInLocal)
	if emp.ShiftType == employee.ShiftNight && checkInLocal.Hour() < nightShiftCutoffHour {
		attendanceDate = attendanceDate.AddDate(0, 0, -1)
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, attendanceDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyMarked
	}

	hol, err := s.HolidayRepository.GetByDate(ctx, attendanceDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("check holiday: %w", err)
	}
	if hol != nil {
		return attendance.AttendanceResponse{}, attendance.ErrHolidayConflict
	}

	onLeave, err := s.LeaveRequestRepository.HasApprovedLeaveOn(ctx, emp.ID, attendanceDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("check approved leave: %w", err)
	}
	if onLeave {
		return attendance.AttendanceResponse{}, attendance.ErrOnLeaveConflict
	}

	if s.cal.IsNonWorkingDay(attendanceDate) {
		return attendance.AttendanceResponse{}, attendance.ErrWeekendConflict
	}

	status := attendance.StatusOnTime
	lateBy := 0
	if scheduledStart, ok := scheduledTimeOn(attendanceDate, emp.ScheduledStart); ok {
		if checkInLocal.After(scheduledStart) {
			status = attendance.StatusLate
			lateBy = int(checkInLocal.Sub(scheduledStart).Minutes())
		}
	}

	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       attendanceDate,
		TimeIn:     &checkInAt,
		Status:     status,
		LateBy:     lateBy,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("create attendance: %w", err)
	}

	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOutAt := time.Now()
	if req.Time != "" {
		checkOutAt, _ = time.Parse(time.RFC3339, req.Time)
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.TimeIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.TimeOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	record.TimeOut = &checkOutAt
	record.TotalHours = checkOutAt.Sub(*record.TimeIn).Hours()

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("update attendance: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(records), nil
}

// MonthlyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlyReport(ctx context.Context, employeeID, month string) (attendance.MonthlyReport, error) {
	monthStart, err := s.parseMonth(month)
	if err != nil {
		return attendance.MonthlyReport{}, err
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthlyReport{}, fmt.Errorf("get employee: %w", err)
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return attendance.MonthlyReport{}, fmt.Errorf("list attendance: %w", err)
	}

	report := attendance.MonthlyReport{
		EmployeeID:  employeeID,
		Month:       month,
		DaysInMonth: monthEnd.Day(),
	}

	for _, d := range s.cal.DateRange(monthStart, monthEnd) {
		if s.cal.IsNonWorkingDay(d) {
			report.WeekendDays++
		}
	}
	report.WorkingDays = report.DaysInMonth - report.WeekendDays

	for _, r := range records {
		switch r.Status {
		case attendance.StatusOnTime:
			report.OnTime++
		case attendance.StatusLate:
			report.Late++
		case attendance.StatusHoliday:
			report.Holidays++
		case attendance.StatusOnLeave:
			report.OnLeave++
		case attendance.StatusAbsence:
			report.RecordedAbsent++
		}
	}

	// Every third late day counts as one absence.
	report.LateConversions = report.Late / 3
	report.TotalAbsent = report.RecordedAbsent + report.LateConversions
	if report.TotalAbsent > report.WorkingDays {
		report.TotalAbsent = report.WorkingDays
	}

	return report, nil
}

func (s *AttendanceServiceImpl) parseMonth(month string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01", month, s.cal.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return s.cal.Normalize(parsed), nil
}

// scheduledTimeOn combines a calendar date with an "HH:MM" wall-clock time.
func scheduledTimeOn(date time.Time, hhmm string) (time.Time, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), true
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.ToResponse(r))
	}
	return out
}
