package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abc-staff/staff-backend-go/internal/config"
	appHTTP "github.com/abc-staff/staff-backend-go/internal/handler/http"
	"github.com/abc-staff/staff-backend-go/internal/pkg/cron"
	"github.com/abc-staff/staff-backend-go/internal/pkg/database"
	"github.com/abc-staff/staff-backend-go/internal/pkg/jwt"
	"github.com/abc-staff/staff-backend-go/internal/repository/postgresql"
	attendanceService "github.com/abc-staff/staff-backend-go/internal/service/attendance"
	authService "github.com/abc-staff/staff-backend-go/internal/service/auth"
	payRateService "github.com/abc-staff/staff-backend-go/internal/service/payrate"
	scheduleService "github.com/abc-staff/staff-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	storeRepo := postgresql.NewStoreRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	payRateRepo := postgresql.NewPayRateRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	payCalculator := attendanceService.NewPayCalculator()

	authSvc := authService.NewAuthService(employeeRepo, storeRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		scheduleRepo,
		payRateRepo,
		storeRepo,
		payCalculator,
		cfg.Payroll.DefaultHourlyRate,
		cfg.Payroll.DefaultTimezone,
	)
	payRateSvc := payRateService.NewPayRateService(payRateRepo, cfg.Payroll.DefaultHourlyRate)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, employeeRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payRateHandler := appHTTP.NewPayRateHandler(payRateSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		payRateHandler,
		scheduleHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(
		attendanceRepo,
		payRateRepo,
		storeRepo,
		payCalculator,
		cfg.Payroll.DefaultHourlyRate,
		cfg.Payroll.DefaultTimezone,
	).RegisterJobs(scheduler)
	cron.NewPayRateJobs(payRateRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down...")
	_ = server.Close()
}
