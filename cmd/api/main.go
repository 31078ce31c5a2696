package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worktime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/holidayapi"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/worktime-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/worktime-backend-go/internal/service/holiday"
	reportService "github.com/cmlabs-hris/worktime-backend-go/internal/service/report"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	facilityRepo := postgresql.NewFacilityRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Skew)
	holidayClient := holidayapi.NewClient(cfg.Holiday.APIURL, cfg.Holiday.FetchTimeout)
	holidayCache := holidayService.NewCache(holidayClient, cfg.Holiday.CacheTTL)

	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		employeeRepo,
		cfg.Location(),
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, facilityRepo)
	reportSvc := reportService.NewReportService(
		employeeRepo,
		companyRepo,
		facilityRepo,
		attendanceRepo,
		holidayCache,
		cfg.Report,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidayCache)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		attendanceHandler,
		reportHandler,
		employeeHandler,
		holidayHandler,
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewHolidayJobs(holidayCache, cfg.Holiday.WarmInterval, time.Minute).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
