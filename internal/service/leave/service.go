package leave

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

type LeaveServiceImpl struct {
	uow database.UnitOfWork
	cal *calendar.Calendar
	log *slog.Logger
	leave.LeaveRequestRepository
	leave.LeaveTypeRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
}

func NewLeaveService(
	uow database.UnitOfWork,
	cal *calendar.Calendar,
	log *slog.Logger,
	leaveRepo leave.LeaveRequestRepository,
	typeRepo leave.LeaveTypeRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		uow:                    uow,
		cal:                    cal,
		log:                    log,
		LeaveRequestRepository: leaveRepo,
		LeaveTypeRepository:    typeRepo,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		HolidayRepository:      holidayRepo,
	}
}

// CreateRequest implements leave.LeaveService. The projected day count
// excludes weekends, holidays on working days, and days already covered by an
// approved leave; overlaps reduce the count but never block the request.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startParsed, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.cal.Location())
	endParsed, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.cal.Location())
	start := s.cal.Normalize(startParsed)
	end := s.cal.Normalize(endParsed)

	if end.Before(start) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	if start.Before(s.cal.Today()) {
		return leave.LeaveRequestResponse{}, leave.ErrPastDate
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("get employee: %w", err)
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("get leave type: %w", err)
	}

	balance, err := s.EmployeeRepository.GetBalance(ctx, emp.ID, leaveType.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("get balance: %w", err)
	}

	holidaySet, holidayIDs, err := s.holidaysInRange(ctx, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	approved, err := s.LeaveRequestRepository.ListApprovedOverlapping(ctx, emp.ID, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("list overlapping leaves: %w", err)
	}
	coveredSet := make(map[string]bool)
	for _, l := range approved {
		for _, d := range s.cal.DateRange(l.StartDate, l.EndDate) {
			coveredSet[s.cal.DateKey(d)] = true
		}
	}

	days := s.cal.DateRange(start, end)
	var weekends, skipped []time.Time
	eligible := 0
	for _, d := range days {
		key := s.cal.DateKey(d)
		switch {
		case s.cal.IsNonWorkingDay(d):
			weekends = append(weekends, d)
		case holidaySet[key]:
			// holiday on a working day, never billed as leave
		case coveredSet[key]:
			skipped = append(skipped, d)
		default:
			eligible++
		}
	}

	if eligible <= 0 {
		return leave.LeaveRequestResponse{}, leave.ErrNoEligibleDays
	}
	if balance.CurrentBalance < eligible {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	request := leave.LeaveRequest{
		EmployeeID:             emp.ID,
		LeaveTypeID:            leaveType.ID,
		LeaveTypeName:          leaveType.Name,
		StartDate:              start,
		EndDate:                end,
		Reason:                 req.Reason,
		Status:                 leave.StatusPending,
		CalculatedDays:         eligible,
		TotalDaysOfLeavePeriod: len(days),
		Weekends:               weekends,
		Holidays:               holidayIDs,
		SkippedDates:           skipped,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	switch {
	case request.Status == req.Status && req.Status == leave.StatusApproved:
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyApproved
	case request.Status == req.Status && req.Status == leave.StatusRejected:
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyRejected
	}

	wasApproved := request.Status == leave.StatusApproved
	request.Status = req.Status
	request.ApprovedBy = &req.ApprovedBy

	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		if req.Status == leave.StatusApproved {
			return s.approve(ctx, &request)
		}
		if wasApproved {
			return s.revertApproval(ctx, &request)
		}
		// Pending to Rejected is a plain status change.
		return s.LeaveRequestRepository.Update(ctx, request)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.log.Info("leave status updated",
		slog.String("leave_request_id", request.ID),
		slog.String("status", request.Status),
		slog.Int("calculated_days", request.CalculatedDays),
	)
	return leave.ToResponse(request), nil
}

// approve expands the range and overrides every eligible attendance record to
// On Leave. The billed day count comes from the records actually touched, so
// it cannot drift from affected_attendance.
func (s *LeaveServiceImpl) approve(ctx context.Context, request *leave.LeaveRequest) error {
	now := time.Now()

	holidaySet, _, err := s.holidaysInRange(ctx, request.StartDate, request.EndDate)
	if err != nil {
		return err
	}

	var affected []string
	for _, day := range s.cal.DateRange(request.StartDate, request.EndDate) {
		if s.cal.IsNonWorkingDay(day) || holidaySet[s.cal.DateKey(day)] {
			continue
		}

		record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, request.EmployeeID, day)
		if err != nil {
			return fmt.Errorf("get attendance: %w", err)
		}

		if record == nil {
			created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID: request.EmployeeID,
				Date:       day,
				Status:     attendance.StatusOnLeave,
			})
			if err != nil {
				return fmt.Errorf("create on-leave record: %w", err)
			}
			affected = append(affected, created.ID)
			continue
		}

		if !record.Override(attendance.StatusOnLeave, true, 0, now) {
			// already Holiday or On Leave, this day is not billed
			continue
		}
		if err := s.AttendanceRepository.Update(ctx, *record); err != nil {
			return fmt.Errorf("update attendance: %w", err)
		}
		affected = append(affected, record.ID)
	}

	if len(affected) == 0 {
		return leave.ErrNoEligibleDays
	}

	balance, err := s.EmployeeRepository.GetBalance(ctx, request.EmployeeID, request.LeaveTypeID)
	if err != nil {
		if errors.Is(err, employee.ErrBalanceNotFound) {
			return leave.ErrInsufficientBalance
		}
		return fmt.Errorf("get balance: %w", err)
	}
	if balance.CurrentBalance < len(affected) {
		return leave.ErrInsufficientBalance
	}

	balance.Debit(len(affected))
	if err := s.EmployeeRepository.UpdateBalance(ctx, balance); err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}

	request.CalculatedDays = len(affected)
	request.AffectedAttendance = affected
	return s.LeaveRequestRepository.Update(ctx, *request)
}

// revertApproval walks affected_attendance backwards through the snapshot
// stacks, deletes records that only existed because of the approval, and
// credits the billed days back.
func (s *LeaveServiceImpl) revertApproval(ctx context.Context, request *leave.LeaveRequest) error {
	records, err := s.AttendanceRepository.ListByIDs(ctx, request.AffectedAttendance)
	if err != nil {
		return fmt.Errorf("list affected attendance: %w", err)
	}

	for _, record := range records {
		if _, ok := record.Revert(); !ok {
			if err := s.AttendanceRepository.Delete(ctx, record.ID); err != nil {
				return fmt.Errorf("delete on-leave record: %w", err)
			}
			continue
		}
		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("restore attendance: %w", err)
		}
	}

	balance, err := s.EmployeeRepository.GetBalance(ctx, request.EmployeeID, request.LeaveTypeID)
	if err != nil && !errors.Is(err, employee.ErrBalanceNotFound) {
		return fmt.Errorf("get balance: %w", err)
	}
	if err == nil {
		balance.Credit(request.CalculatedDays)
		if err := s.EmployeeRepository.UpdateBalance(ctx, balance); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
	}

	request.CalculatedDays = 0
	request.AffectedAttendance = []string{}
	return s.LeaveRequestRepository.Update(ctx, *request)
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(request), nil
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// holidaysInRange returns the date-key set and ids of holidays that fall on
// working days within [start, end].
func (s *LeaveServiceImpl) holidaysInRange(ctx context.Context, start, end time.Time) (map[string]bool, []string, error) {
	holidays, err := s.HolidayRepository.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("list holidays: %w", err)
	}

	set := make(map[string]bool, len(holidays))
	var ids []string
	for _, h := range holidays {
		if s.cal.IsNonWorkingDay(h.Date) {
			continue
		}
		set[s.cal.DateKey(h.Date)] = true
		ids = append(ids, h.ID)
	}
	return set, ids, nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	out := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, l := range requests {
		out = append(out, leave.ToResponse(l))
	}
	return out
}
