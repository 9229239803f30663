package response

import (
	"errors"
	"net/http"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/validator"
	"github.com/digihr/attendance-backend-go/internal/repository/postgresql"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrHolidayConflict):
		BadRequest(w, "Cannot mark attendance on a holiday", nil)
	case errors.Is(err, attendance.ErrOnLeaveConflict):
		BadRequest(w, "Cannot mark attendance on an approved leave day", nil)
	case errors.Is(err, attendance.ErrWeekendConflict):
		BadRequest(w, "Cannot mark attendance on a non-working day", nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in recorded for this attendance", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance already checked out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Date must not be in the future", nil)
	case errors.Is(err, attendance.ErrNonWorkingDay):
		BadRequest(w, "Date is a non-working day", nil)
	case errors.Is(err, attendance.ErrHolidayDate):
		BadRequest(w, "Date is a holiday", nil)
	case errors.Is(err, attendance.ErrFutureMonth):
		BadRequest(w, "Month must not be in the future", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found for employee")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrPastDate):
		BadRequest(w, "Leave dates must not be in the past", nil)
	case errors.Is(err, leave.ErrNoEligibleDays):
		BadRequest(w, "No eligible leave days in the requested range", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyApproved):
		Conflict(w, "Leave request is already approved")
	case errors.Is(err, leave.ErrAlreadyRejected):
		Conflict(w, "Leave request is already rejected")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeExists):
		Conflict(w, "Leave type with this name already exists")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrDuplicateDate):
		Conflict(w, "A holiday already exists on this date")
	case errors.Is(err, holiday.ErrPastDate):
		BadRequest(w, "Holiday date must not be in the past", nil)
	case errors.Is(err, holiday.ErrWeekendDate):
		BadRequest(w, "Holiday date must not fall on a non-working day", nil)
	case errors.Is(err, holiday.ErrPastHoliday):
		BadRequest(w, "Past holidays cannot be modified", nil)

	// Storage conflicts, retryable by the caller
	case errors.Is(err, postgresql.ErrTxConflict):
		Conflict(w, "Operation conflicted with a concurrent update, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
