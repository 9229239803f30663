package employee

import (
	"time"
)

// Shift types
const (
	ShiftDay   = "day"
	ShiftNight = "night"
)

type Employee struct {
	ID             string
	Name           string
	Email          string
	ShiftType      string
	ScheduledStart string // "HH:MM", local wall-clock time
	ScheduledEnd   string // "HH:MM"
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Loaded alongside the employee when balance context is needed.
	Balances []LeaveBalance
}

// LeaveBalance is one employee's quota for one leave type. The invariant
// 0 <= CurrentBalance <= AllowedLeaves is clamped, never rejected.
type LeaveBalance struct {
	EmployeeID     string
	LeaveTypeID    string
	AllowedLeaves  int
	CurrentBalance int
}

// Credit adds n days back, clamped to AllowedLeaves.
func (b *LeaveBalance) Credit(n int) {
	b.CurrentBalance += n
	if b.CurrentBalance > b.AllowedLeaves {
		b.CurrentBalance = b.AllowedLeaves
	}
}

// Debit removes n days, clamped at zero.
func (b *LeaveBalance) Debit(n int) {
	b.CurrentBalance -= n
	if b.CurrentBalance < 0 {
		b.CurrentBalance = 0
	}
}

// ApplyAllowedDelta moves the quota ceiling and shifts the current balance by
// the same delta, re-clamping to the new [0, AllowedLeaves] range.
func (b *LeaveBalance) ApplyAllowedDelta(delta int) {
	b.AllowedLeaves += delta
	if b.AllowedLeaves < 0 {
		b.AllowedLeaves = 0
	}
	b.CurrentBalance += delta
	if b.CurrentBalance < 0 {
		b.CurrentBalance = 0
	}
	if b.CurrentBalance > b.AllowedLeaves {
		b.CurrentBalance = b.AllowedLeaves
	}
}

// BalanceFor returns the employee's balance for the given leave type.
func (e *Employee) BalanceFor(leaveTypeID string) *LeaveBalance {
	for i := range e.Balances {
		if e.Balances[i].LeaveTypeID == leaveTypeID {
			return &e.Balances[i]
		}
	}
	return nil
}
