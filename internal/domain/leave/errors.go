package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrPastDate             = errors.New("leave dates must not be in the past")
	ErrNoEligibleDays       = errors.New("no eligible leave days in the requested range")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrAlreadyApproved      = errors.New("leave request is already approved")
	ErrAlreadyRejected      = errors.New("leave request is already rejected")

	// Leave type errors
	ErrLeaveTypeNotFound = errors.New("leave type not found")
	ErrLeaveTypeExists   = errors.New("leave type with this name already exists")
)
