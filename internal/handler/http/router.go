package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	app config.AppConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	employeeHandler EmployeeHandler,
	holidayHandler HolidayHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/{id}", attendanceHandler.Get)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/work-hours", reportHandler.GetWorkHourSummary)
				r.Get("/work-hours/export", reportHandler.ExportWorkHourSummary)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListActive)
				r.Get("/{id}", employeeHandler.GetEmployee)
			})

			r.Get("/holidays", holidayHandler.List)
		})
	})
	return r
}
