package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/digihr/attendance-backend-go/internal/config"
	appHTTP "github.com/digihr/attendance-backend-go/internal/handler/http"
	"github.com/digihr/attendance-backend-go/internal/pkg/calendar"
	"github.com/digihr/attendance-backend-go/internal/pkg/cron"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
	"github.com/digihr/attendance-backend-go/internal/pkg/jwt"
	"github.com/digihr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/digihr/attendance-backend-go/internal/service/attendance"
	holidayService "github.com/digihr/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/digihr/attendance-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	cal, err := calendar.New(cfg.App.TimeZone)
	if err != nil {
		fmt.Println("Error loading time zone:", err)
		return
	}

	txManager := postgresql.NewTxManager(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	attendanceSvc := attendanceService.NewAttendanceService(
		txManager, cal, logger,
		attendanceRepo, employeeRepo, leaveRequestRepo, holidayRepo,
	)
	leaveSvc := leaveService.NewLeaveService(
		txManager, cal, logger,
		leaveRequestRepo, leaveTypeRepo, attendanceRepo, employeeRepo, holidayRepo,
	)
	leaveTypeSvc := leaveService.NewLeaveTypeService(
		txManager, logger,
		leaveTypeRepo, leaveRequestRepo, employeeRepo,
	)
	holidaySvc := holidayService.NewHolidayService(
		txManager, cal, logger,
		holidayRepo, attendanceRepo, employeeRepo, leaveRequestRepo,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, leaveTypeSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, cal)
	attendanceJobs.RegisterJobs(scheduler, cfg.Sweep.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, attendanceHandler, leaveHandler, holidayHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server starting", "addr", addr, "time_zone", cfg.App.TimeZone)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
