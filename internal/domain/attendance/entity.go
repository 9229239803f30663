package attendance

import (
	"time"
)

// Attendance statuses. The strings are part of the wire and storage format.
const (
	StatusOnTime  = "On Time"
	StatusLate    = "Late"
	StatusAbsence = "Absence"
	StatusHoliday = "Holiday"
	StatusOnLeave = "On Leave"
)

// Snapshot is one frame of the previous-state stack, captured before an
// override so the record can be restored exactly.
type Snapshot struct {
	TimeIn                  *time.Time `json:"time_in"`
	TimeOut                 *time.Time `json:"time_out"`
	Status                  string     `json:"status"`
	LateBy                  int        `json:"late_by"`
	TotalHours              float64    `json:"total_hours"`
	LeaveConvertedToHoliday int        `json:"leave_converted_to_holiday_count"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	TimeIn     *time.Time
	TimeOut    *time.Time
	Status     string
	LateBy     int // minutes past the scheduled start
	TotalHours float64

	// LeaveConvertedToHoliday is 1 while a Holiday override on this record
	// absorbed an On Leave day; holiday deletion uses it to re-debit the
	// balance during restore.
	LeaveConvertedToHoliday int

	// PreviousAttendance is the override history, newest last.
	PreviousAttendance []Snapshot

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Overridable reports whether a cascade may replace this record's status.
// Holiday and On Leave are terminal against each other; every other status
// may be overridden.
func (a *Attendance) Overridable() bool {
	return a.Status != StatusHoliday && a.Status != StatusOnLeave
}

// PushSnapshot appends the record's current state to the history stack.
func (a *Attendance) PushSnapshot(now time.Time) {
	a.PreviousAttendance = append(a.PreviousAttendance, Snapshot{
		TimeIn:                  a.TimeIn,
		TimeOut:                 a.TimeOut,
		Status:                  a.Status,
		LateBy:                  a.LateBy,
		TotalHours:              a.TotalHours,
		LeaveConvertedToHoliday: a.LeaveConvertedToHoliday,
		UpdatedAt:               now,
	})
}

// Override snapshots the current state and replaces it with the given status.
// Returns false without touching the record when the status already matches
// or the record is terminal (Holiday/On Leave), unless force is set by the
// caller through OverrideTerminal.
func (a *Attendance) Override(status string, clearTimes bool, leaveConverted int, now time.Time) bool {
	if a.Status == status || !a.Overridable() {
		return false
	}
	a.applyOverride(status, clearTimes, leaveConverted, now)
	return true
}

// OverrideTerminal is Override for the one sanctioned terminal transition:
// a holiday absorbing an approved On Leave day.
func (a *Attendance) OverrideTerminal(status string, clearTimes bool, leaveConverted int, now time.Time) bool {
	if a.Status == status {
		return false
	}
	a.applyOverride(status, clearTimes, leaveConverted, now)
	return true
}

func (a *Attendance) applyOverride(status string, clearTimes bool, leaveConverted int, now time.Time) {
	a.PushSnapshot(now)
	a.Status = status
	a.LateBy = 0
	a.TotalHours = 0
	a.LeaveConvertedToHoliday = leaveConverted
	if clearTimes {
		a.TimeIn = nil
		a.TimeOut = nil
	}
	a.UpdatedAt = now
}

// Revert pops the newest snapshot and restores the record to it. The second
// return is false when the stack is empty, meaning the record only exists
// because of the override and the caller should delete it.
func (a *Attendance) Revert() (Snapshot, bool) {
	n := len(a.PreviousAttendance)
	if n == 0 {
		return Snapshot{}, false
	}
	snap := a.PreviousAttendance[n-1]
	a.PreviousAttendance = a.PreviousAttendance[:n-1]

	a.TimeIn = snap.TimeIn
	a.TimeOut = snap.TimeOut
	a.Status = snap.Status
	a.LateBy = snap.LateBy
	a.TotalHours = snap.TotalHours
	a.LeaveConvertedToHoliday = snap.LeaveConvertedToHoliday
	a.UpdatedAt = snap.UpdatedAt
	return snap, true
}
