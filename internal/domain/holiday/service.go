package holiday

import (
	"context"
)

// HolidayService manages holidays and the attendance cascade they trigger.
type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	List(ctx context.Context) ([]HolidayResponse, error)
}
