package holiday

import (
	"time"

	"github.com/digihr/attendance-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

func (r *CreateHolidayRequest) Validate() error {
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

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.CreatedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "created_by",
			Message: "created_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateHolidayRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Date        *string `json:"date,omitempty"` // YYYY-MM-DD
	Description *string `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && !validator.IsValidName(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name contains invalid characters",
		})
	}

	if r.Date != nil {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Date               string   `json:"date"`
	Description        string   `json:"description,omitempty"`
	CreatedBy          string   `json:"created_by"`
	AffectedAttendance []string `json:"affected_attendance"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func ToResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:                 h.ID,
		Name:               h.Name,
		Date:               h.Date.Format("2006-01-02"),
		Description:        h.Description,
		CreatedBy:          h.CreatedBy,
		AffectedAttendance: h.AffectedAttendance,
		CreatedAt:          h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          h.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AffectedAttendance == nil {
		resp.AffectedAttendance = []string{}
	}
	return resp
}
