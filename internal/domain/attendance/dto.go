package attendance

import (
	"time"

	"github.com/digihr/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	Time       string `json:"time,omitempty"` // RFC3339; defaults to now
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.Time != "" {
		if _, valid := validator.IsValidDateTime(r.Time); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	AttendanceID string `json:"attendance_id"`
	Time         string `json:"time,omitempty"` // RFC3339; defaults to now
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	} else if !validator.IsValidUUID(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id must be a valid UUID",
		})
	}

	if r.Time != "" {
		if _, valid := validator.IsValidDateTime(r.Time); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "time",
				Message: "time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkAbsencesRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *MarkAbsencesRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkMonthAbsencesRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
}

func (r *MarkMonthAbsencesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	Date         string     `json:"date"`
	TimeIn       *string    `json:"time_in,omitempty"`
	TimeOut      *string    `json:"time_out,omitempty"`
	Status       string     `json:"status"`
	LateBy       int        `json:"late_by"`
	TotalHours   float64    `json:"total_hours"`
	History      []Snapshot `json:"previous_attendance,omitempty"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		LateBy:       a.LateBy,
		TotalHours:   a.TotalHours,
		History:      a.PreviousAttendance,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.TimeIn != nil {
		s := a.TimeIn.Format(time.RFC3339)
		resp.TimeIn = &s
	}
	if a.TimeOut != nil {
		s := a.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &s
	}
	return resp
}

type SweepResult struct {
	Date         string   `json:"date,omitempty"`
	Month        string   `json:"month,omitempty"`
	MarkedAbsent int      `json:"marked_absent"`
	EmployeeIDs  []string `json:"employee_ids,omitempty"`
}

type MonthlyReport struct {
	EmployeeID     string `json:"employee_id"`
	Month          string `json:"month"`
	DaysInMonth    int    `json:"days_in_month"`
	WorkingDays    int    `json:"working_days"`
	WeekendDays    int    `json:"weekend_days"`
	OnTime         int    `json:"on_time"`
	Late           int    `json:"late"`
	Holidays       int    `json:"holidays"`
	OnLeave        int    `json:"on_leave"`
	RecordedAbsent int    `json:"recorded_absent"`
	// LateConversions is floor(Late/3); TotalAbsent includes it, capped at
	// WorkingDays.
	LateConversions int `json:"late_conversions"`
	TotalAbsent     int `json:"total_absent"`
}
