package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/calendar"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
)

type HolidayServiceImpl struct {
	uow database.UnitOfWork
	cal *calendar.Calendar
	log *slog.Logger
	holiday.HolidayRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	leave.LeaveRequestRepository
}

func NewHolidayService(
	uow database.UnitOfWork,
	cal *calendar.Calendar,
	log *slog.Logger,
	holidayRepo holiday.HolidayRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
) *HolidayServiceImpl {
	return &HolidayServiceImpl{
		uow:                    uow,
		cal:                    cal,
		log:                    log,
		HolidayRepository:      holidayRepo,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		LeaveRequestRepository: leaveRepo,
	}
}

// Create implements holiday.HolidayService. The cascade runs over every
// employee inside one transaction; a failure for any employee rolls the
// whole holiday back.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	parsed, _ := time.ParseInLocation("2006-01-02", req.Date, s.cal.Location())
	date := s.cal.Normalize(parsed)

	if date.Before(s.cal.Today()) {
		return holiday.HolidayResponse{}, holiday.ErrPastDate
	}
	if s.cal.IsNonWorkingDay(date) {
		return holiday.HolidayResponse{}, holiday.ErrWeekendDate
	}

	existing, err := s.HolidayRepository.GetByDate(ctx, date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("check holiday date: %w", err)
	}
	if existing != nil {
		return holiday.HolidayResponse{}, holiday.ErrDuplicateDate
	}

	var created holiday.Holiday
	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		created, err = s.HolidayRepository.Create(ctx, holiday.Holiday{
			Name:        req.Name,
			Date:        date,
			Description: req.Description,
			CreatedBy:   req.CreatedBy,
		})
		if err != nil {
			return fmt.Errorf("create holiday: %w", err)
		}

		if err := s.applyCascade(ctx, &created); err != nil {
			return err
		}
		return s.HolidayRepository.Update(ctx, created)
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.log.Info("holiday cascade applied",
		slog.String("holiday_id", created.ID),
		slog.String("date", req.Date),
		slog.Int("affected", len(created.AffectedAttendance)),
	)
	return holiday.ToResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	h, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.cal.Normalize(h.Date).Before(s.cal.Today()) {
		return holiday.ErrPastHoliday
	}

	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.revertCascade(ctx, h); err != nil {
			return err
		}
		return s.HolidayRepository.Delete(ctx, h.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info("holiday cascade reverted",
		slog.String("holiday_id", h.ID),
		slog.Int("affected", len(h.AffectedAttendance)),
	)
	return nil
}

// Update implements holiday.HolidayService. A date change reverts the old
// cascade and reapplies it on the new date; otherwise only the metadata
// changes.
func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.HolidayRepository.GetByID(ctx, req.ID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = *req.Description
	}

	dateChanged := false
	var newDate time.Time
	if req.Date != nil {
		parsed, _ := time.ParseInLocation("2006-01-02", *req.Date, s.cal.Location())
		newDate = s.cal.Normalize(parsed)
		dateChanged = !s.cal.SameDate(newDate, h.Date)
	}

	if !dateChanged {
		if err := s.HolidayRepository.Update(ctx, h); err != nil {
			return holiday.HolidayResponse{}, err
		}
		return holiday.ToResponse(h), nil
	}

	if s.cal.Normalize(h.Date).Before(s.cal.Today()) {
		return holiday.HolidayResponse{}, holiday.ErrPastHoliday
	}
	if newDate.Before(s.cal.Today()) {
		return holiday.HolidayResponse{}, holiday.ErrPastDate
	}
	if s.cal.IsNonWorkingDay(newDate) {
		return holiday.HolidayResponse{}, holiday.ErrWeekendDate
	}

	existing, err := s.HolidayRepository.GetByDate(ctx, newDate)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("check holiday date: %w", err)
	}
	if existing != nil && existing.ID != h.ID {
		return holiday.HolidayResponse{}, holiday.ErrDuplicateDate
	}

	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.revertCascade(ctx, h); err != nil {
			return err
		}

		h.Date = newDate
		h.AffectedAttendance = nil
		if err := s.applyCascade(ctx, &h); err != nil {
			return err
		}
		return s.HolidayRepository.Update(ctx, h)
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	s.log.Info("holiday moved",
		slog.String("holiday_id", h.ID),
		slog.String("date", *req.Date),
		slog.Int("affected", len(h.AffectedAttendance)),
	)
	return holiday.ToResponse(h), nil
}

// applyCascade stamps the holiday onto every employee's ledger for its date.
// An On Leave day is absorbed: the balance gets the day back, the owning
// approved leave shrinks by one, and the override is marked so deletion can
// undo the exchange.
func (s *HolidayServiceImpl) applyCascade(ctx context.Context, h *holiday.Holiday) error {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	now := time.Now()

	for _, emp := range employees {
		record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, h.Date)
		if err != nil {
			return fmt.Errorf("get attendance for %s: %w", emp.ID, err)
		}

		if record == nil {
			created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID: emp.ID,
				Date:       h.Date,
				Status:     attendance.StatusHoliday,
			})
			if err != nil {
				return fmt.Errorf("create holiday record for %s: %w", emp.ID, err)
			}
			h.AffectedAttendance = append(h.AffectedAttendance, created.ID)
			continue
		}

		if record.Status == attendance.StatusHoliday {
			continue
		}

		if record.Status == attendance.StatusOnLeave {
			if err := s.absorbLeaveDay(ctx, emp.ID, record, h); err != nil {
				return err
			}
			record.OverrideTerminal(attendance.StatusHoliday, true, 1, now)
		} else if !record.Override(attendance.StatusHoliday, true, 0, now) {
			continue
		}

		if err := s.AttendanceRepository.Update(ctx, *record); err != nil {
			return fmt.Errorf("update attendance for %s: %w", emp.ID, err)
		}
		h.AffectedAttendance = append(h.AffectedAttendance, record.ID)
	}
	return nil
}

// absorbLeaveDay gives the employee their leave day back when a holiday
// lands on it: credit the balance, shrink the owning leave, back-reference
// the holiday on the leave.
func (s *HolidayServiceImpl) absorbLeaveDay(ctx context.Context, employeeID string, record *attendance.Attendance, h *holiday.Holiday) error {
	owning, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, employeeID, h.Date, record.ID)
	if err != nil {
		return fmt.Errorf("find owning leave: %w", err)
	}
	if owning == nil {
		return nil
	}

	balance, err := s.EmployeeRepository.GetBalance(ctx, employeeID, owning.LeaveTypeID)
	if err != nil {
		if errors.Is(err, employee.ErrBalanceNotFound) {
			return nil
		}
		return fmt.Errorf("get balance: %w", err)
	}
	balance.Credit(1)
	if err := s.EmployeeRepository.UpdateBalance(ctx, balance); err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}

	if owning.CalculatedDays > 0 {
		owning.CalculatedDays--
	}
	owning.AddHoliday(h.ID)
	if err := s.LeaveRequestRepository.Update(ctx, *owning); err != nil {
		return fmt.Errorf("update owning leave: %w", err)
	}
	return nil
}

// revertCascade undoes applyCascade record by record: pop the snapshot, or
// delete records that only exist because of the holiday. A restored On Leave
// day re-bills the leave it came from.
func (s *HolidayServiceImpl) revertCascade(ctx context.Context, h holiday.Holiday) error {
	records, err := s.AttendanceRepository.ListByIDs(ctx, h.AffectedAttendance)
	if err != nil {
		return fmt.Errorf("list affected attendance: %w", err)
	}

	for _, record := range records {
		wasConverted := record.LeaveConvertedToHoliday > 0

		if _, ok := record.Revert(); !ok {
			if err := s.AttendanceRepository.Delete(ctx, record.ID); err != nil {
				return fmt.Errorf("delete holiday record: %w", err)
			}
			continue
		}
		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("restore attendance: %w", err)
		}

		if wasConverted && record.Status == attendance.StatusOnLeave {
			if err := s.restoreLeaveDay(ctx, record, h); err != nil {
				return err
			}
		}
	}
	return nil
}

// restoreLeaveDay reverses absorbLeaveDay after a holiday is removed.
func (s *HolidayServiceImpl) restoreLeaveDay(ctx context.Context, record attendance.Attendance, h holiday.Holiday) error {
	owning, err := s.LeaveRequestRepository.FindApprovedCovering(ctx, record.EmployeeID, h.Date, record.ID)
	if err != nil {
		return fmt.Errorf("find owning leave: %w", err)
	}
	if owning == nil {
		return nil
	}

	balance, err := s.EmployeeRepository.GetBalance(ctx, record.EmployeeID, owning.LeaveTypeID)
	if err != nil {
		if errors.Is(err, employee.ErrBalanceNotFound) {
			return nil
		}
		return fmt.Errorf("get balance: %w", err)
	}
	balance.Debit(1)
	if err := s.EmployeeRepository.UpdateBalance(ctx, balance); err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}

	owning.CalculatedDays++
	owning.RemoveHoliday(h.ID)
	if err := s.LeaveRequestRepository.Update(ctx, *owning); err != nil {
		return fmt.Errorf("update owning leave: %w", err)
	}
	return nil
}

// GetByID implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetByID(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	h, err := s.HolidayRepository.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(h), nil
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holiday.ToResponse(h))
	}
	return out, nil
}
