package holiday

import (
	"time"
)

type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Description string
	CreatedBy   string

	// AffectedAttendance lists every attendance record the holiday's cascade
	// created or overrode; deletion walks it to undo the cascade.
	AffectedAttendance []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
