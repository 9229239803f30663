package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/pkg/calendar"
)

// AttendanceJobs owns the nightly absence sweep.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	cal               *calendar.Calendar
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, cal *calendar.Calendar) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		cal:               cal,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("sweep_previous_day_absences", interval, j.SweepPreviousDay)
}

// SweepPreviousDay backfills Absence records for yesterday. The sweep is
// idempotent, so re-runs after restarts are harmless.
func (j *AttendanceJobs) SweepPreviousDay(ctx context.Context) error {
	yesterday := j.cal.Today().AddDate(0, 0, -1)

	result, err := j.attendanceService.MarkAbsencesForDate(ctx, attendance.MarkAbsencesRequest{
		Date: j.cal.DateKey(yesterday),
	})
	if err != nil {
		// Weekends and holidays have no absences to sweep.
		if errors.Is(err, attendance.ErrNonWorkingDay) || errors.Is(err, attendance.ErrHolidayDate) {
			slog.Info("Cron: no sweep for non-working day", "date", j.cal.DateKey(yesterday))
			return nil
		}
		return err
	}

	slog.Info("Cron: absence sweep finished",
		"date", result.Date,
		"marked_absent", result.MarkedAbsent,
	)
	return nil
}
