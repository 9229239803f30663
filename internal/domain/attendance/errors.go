package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors, checked in this order
	ErrAlreadyMarked     = errors.New("attendance already marked for this date")
	ErrHolidayConflict   = errors.New("cannot mark attendance on a holiday")
	ErrOnLeaveConflict   = errors.New("cannot mark attendance on an approved leave day")
	ErrWeekendConflict   = errors.New("cannot mark attendance on a non-working day")
	ErrNotCheckedIn      = errors.New("no check-in recorded for this attendance")
	ErrAlreadyCheckedOut = errors.New("attendance already checked out")

	// Sweep errors
	ErrFutureDate    = errors.New("date must not be in the future")
	ErrNonWorkingDay = errors.New("date is a non-working day")
	ErrHolidayDate   = errors.New("date is a holiday")
	ErrFutureMonth   = errors.New("month must not be in the future")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
