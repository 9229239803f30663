package holiday

import "errors"

// Holiday domain errors
var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrDuplicateDate   = errors.New("a holiday already exists on this date")
	ErrPastDate        = errors.New("holiday date must not be in the past")
	ErrWeekendDate     = errors.New("holiday date must not fall on a non-working day")
	ErrPastHoliday     = errors.New("past holidays cannot be modified")
)
