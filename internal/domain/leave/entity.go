package leave

import (
	"time"
)

// Leave request statuses
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Leave type statuses
const (
	TypeActive   = "active"
	TypeInactive = "inactive"
)

type LeaveRequest struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	LeaveTypeName string // snapshotted so history survives type deletion
	StartDate     time.Time
	EndDate       time.Time
	Reason        string
	Status        string
	ApprovedBy    *string

	// CalculatedDays is the projection at submission, replaced on approval by
	// the count of records actually touched.
	CalculatedDays         int
	TotalDaysOfLeavePeriod int
	Weekends               []time.Time
	Holidays               []string // holiday ids overlapping the range
	SkippedDates           []time.Time
	AffectedAttendance     []string // attendance ids overridden by approval

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveType struct {
	ID            string
	Name          string
	AllowedLeaves int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasHoliday reports whether the given holiday id is back-referenced.
func (l *LeaveRequest) HasHoliday(holidayID string) bool {
	for _, id := range l.Holidays {
		if id == holidayID {
			return true
		}
	}
	return false
}

// AddHoliday back-references a holiday that absorbed one of this leave's days.
func (l *LeaveRequest) AddHoliday(holidayID string) {
	if !l.HasHoliday(holidayID) {
		l.Holidays = append(l.Holidays, holidayID)
	}
}

// RemoveHoliday drops the back-reference when a holiday is deleted.
func (l *LeaveRequest) RemoveHoliday(holidayID string) {
	out := l.Holidays[:0]
	for _, id := range l.Holidays {
		if id != holidayID {
			out = append(out, id)
		}
	}
	l.Holidays = out
}

// RemoveAffectedAttendance drops an attendance id from the affected set.
func (l *LeaveRequest) RemoveAffectedAttendance(attendanceID string) {
	out := l.AffectedAttendance[:0]
	for _, id := range l.AffectedAttendance {
		if id != attendanceID {
			out = append(out, id)
		}
	}
	l.AffectedAttendance = out
}
