package leave

import (
	"time"

	"github.com/digihr/attendance-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	Reason      string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
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

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	} else if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id must be a valid UUID",
		})
	}

	if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if !validator.IsValidReason(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must contain only letters and spaces",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveStatusRequest struct {
	ID         string `json:"-"`
	Status     string `json:"status"` // Approved or Rejected
	ApprovedBy string `json:"approved_by"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{StatusApproved, StatusRejected}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Approved, Rejected",
		})
	}

	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_by",
			Message: "approved_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveTypeRequest struct {
	Name          string `json:"name"`
	AllowedLeaves int    `json:"allowed_leaves"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.IsValidName(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name contains invalid characters",
		})
	}

	if r.AllowedLeaves <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowed_leaves",
			Message: "allowed_leaves must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	AllowedLeaves *int    `json:"allowed_leaves,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && !validator.IsValidName(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name contains invalid characters",
		})
	}

	if r.AllowedLeaves != nil && *r.AllowedLeaves <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowed_leaves",
			Message: "allowed_leaves must be a positive number",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{TypeActive, TypeInactive}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID                     string   `json:"id"`
	EmployeeID             string   `json:"employee_id"`
	LeaveTypeID            string   `json:"leave_type_id"`
	LeaveTypeName          string   `json:"leave_type_name,omitempty"`
	StartDate              string   `json:"start_date"`
	EndDate                string   `json:"end_date"`
	Reason                 string   `json:"reason"`
	Status                 string   `json:"status"`
	ApprovedBy             *string  `json:"approved_by,omitempty"`
	CalculatedDays         int      `json:"calculated_days"`
	TotalDaysOfLeavePeriod int      `json:"total_days_of_leave_period"`
	Weekends               []string `json:"weekends"`
	Holidays               []string `json:"holidays"`
	SkippedDates           []string `json:"skipped_dates"`
	AffectedAttendance     []string `json:"affected_attendance"`
	CreatedAt              string   `json:"created_at"`
	UpdatedAt              string   `json:"updated_at"`
}

func ToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                     l.ID,
		EmployeeID:             l.EmployeeID,
		LeaveTypeID:            l.LeaveTypeID,
		LeaveTypeName:          l.LeaveTypeName,
		StartDate:              l.StartDate.Format("2006-01-02"),
		EndDate:                l.EndDate.Format("2006-01-02"),
		Reason:                 l.Reason,
		Status:                 l.Status,
		ApprovedBy:             l.ApprovedBy,
		CalculatedDays:         l.CalculatedDays,
		TotalDaysOfLeavePeriod: l.TotalDaysOfLeavePeriod,
		Weekends:               formatDates(l.Weekends),
		Holidays:               l.Holidays,
		SkippedDates:           formatDates(l.SkippedDates),
		AffectedAttendance:     l.AffectedAttendance,
		CreatedAt:              l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              l.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Holidays == nil {
		resp.Holidays = []string{}
	}
	if resp.AffectedAttendance == nil {
		resp.AffectedAttendance = []string{}
	}
	return resp
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

type LeaveTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AllowedLeaves int    `json:"allowed_leaves"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func ToTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:            t.ID,
		Name:          t.Name,
		AllowedLeaves: t.AllowedLeaves,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}
