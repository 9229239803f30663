package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
)

// MarkAbsencesForDate implements attendance.AttendanceService. It backfills
// Absence records for every employee with no record on the given working day.
// The sweep is additive and idempotent: existing records are never touched.
func (s *AttendanceServiceImpl) MarkAbsencesForDate(ctx context.Context, req attendance.MarkAbsencesRequest) (attendance.SweepResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.SweepResult{}, err
	}

	parsed, _ := time.ParseInLocation("2006-01-02", req.Date, s.cal.Location())
	date := s.cal.Normalize(parsed)

	if date.After(s.cal.Today()) {
		return attendance.SweepResult{}, attendance.ErrFutureDate
	}
	if s.cal.IsNonWorkingDay(date) {
		return attendance.SweepResult{}, attendance.ErrNonWorkingDay
	}

	hol, err := s.HolidayRepository.GetByDate(ctx, date)
	if err != nil {
		return attendance.SweepResult{}, fmt.Errorf("check holiday: %w", err)
	}
	if hol != nil {
		return attendance.SweepResult{}, attendance.ErrHolidayDate
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return attendance.SweepResult{}, fmt.Errorf("list employees: %w", err)
	}

	result := attendance.SweepResult{Date: req.Date}
	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, emp := range employees {
			existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
			if err != nil {
				return fmt.Errorf("check attendance for %s: %w", emp.ID, err)
			}
			if existing != nil {
				continue
			}

			onLeave, err := s.LeaveRequestRepository.HasApprovedLeaveOn(ctx, emp.ID, date)
			if err != nil {
				return fmt.Errorf("check approved leave for %s: %w", emp.ID, err)
			}
			if onLeave {
				continue
			}

			if _, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID: emp.ID,
				Date:       date,
				Status:     attendance.StatusAbsence,
			}); err != nil {
				return fmt.Errorf("create absence for %s: %w", emp.ID, err)
			}
			result.MarkedAbsent++
			result.EmployeeIDs = append(result.EmployeeIDs, emp.ID)
		}
		return nil
	})
	if err != nil {
		return attendance.SweepResult{}, err
	}

	s.log.Info("absence sweep finished",
		slog.String("date", req.Date),
		slog.Int("marked_absent", result.MarkedAbsent),
	)
	return result, nil
}

// MarkAbsencesForMonth implements attendance.AttendanceService. It backfills
// one employee's Absence records across a whole month, up to today for the
// current month.
func (s *AttendanceServiceImpl) MarkAbsencesForMonth(ctx context.Context, req attendance.MarkMonthAbsencesRequest) (attendance.SweepResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.SweepResult{}, err
	}

	monthStart, err := s.parseMonth(req.Month)
	if err != nil {
		return attendance.SweepResult{}, err
	}

	today := s.cal.Today()
	if monthStart.After(today) {
		return attendance.SweepResult{}, attendance.ErrFutureMonth
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SweepResult{}, fmt.Errorf("get employee: %w", err)
	}

	monthEnd := monthStart.AddDate(0, 1, -1)
	if monthEnd.After(today) {
		monthEnd = today
	}

	holidays, err := s.HolidayRepository.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return attendance.SweepResult{}, fmt.Errorf("list holidays: %w", err)
	}
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[s.cal.DateKey(h.Date)] = true
	}

	result := attendance.SweepResult{Month: req.Month}
	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, day := range s.cal.DateRange(monthStart, monthEnd) {
			if s.cal.IsNonWorkingDay(day) || holidaySet[s.cal.DateKey(day)] {
				continue
			}

			existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, day)
			if err != nil {
				return fmt.Errorf("check attendance: %w", err)
			}
			if existing != nil {
				continue
			}

			onLeave, err := s.LeaveRequestRepository.HasApprovedLeaveOn(ctx, emp.ID, day)
			if err != nil {
				return fmt.Errorf("check approved leave: %w", err)
			}
			if onLeave {
				continue
			}

			if _, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID: emp.ID,
				Date:       day,
				Status:     attendance.StatusAbsence,
			}); err != nil {
				return fmt.Errorf("create absence: %w", err)
			}
			result.MarkedAbsent++
		}
		return nil
	})
	if err != nil {
		return attendance.SweepResult{}, err
	}

	s.log.Info("monthly absence sweep finished",
		slog.String("employee_id", req.EmployeeID),
		slog.String("month", req.Month),
		slog.Int("marked_absent", result.MarkedAbsent),
	)
	return result, nil
}
