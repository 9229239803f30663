package attendance

import (
	"context"
)

// AttendanceService is the application surface for the attendance ledger.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	List(ctx context.Context) ([]AttendanceResponse, error)
	MonthlyReport(ctx context.Context, employeeID, month string) (MonthlyReport, error)

	// MarkAbsencesForDate backfills Absence records for every employee on one
	// working day
	MarkAbsencesForDate(ctx context.Context, req MarkAbsencesRequest) (SweepResult, error)

	// MarkAbsencesForMonth backfills Absence records for one employee across
	// a whole month
	MarkAbsencesForMonth(ctx context.Context, req MarkMonthAbsencesRequest) (SweepResult, error)
}
