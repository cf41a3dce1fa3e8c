package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the app settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Worker     WorkerHandler
	Company    CompanyHandler
	Signature  SignatureHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
	Event      EventHandler
	Health     *HealthHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", h.Health.Healthz)

	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Get("/me", h.Auth.Me)
				r.Get("/sse-token", h.Auth.SSEToken)
			})
		})

		// token comes from the query string
		r.Get("/events/stream", h.Event.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/workers", func(r chi.Router) {
				r.Put("/me", h.Worker.UpdateProfile)
				r.Put("/me/signature", h.Worker.SetMainSignature)
				r.Get("/{id}", h.Worker.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Worker.List)
					r.Put("/{id}", h.Worker.AdminUpdate)
					r.Delete("/{id}", h.Worker.Delete)
					r.Post("/{id}/reset-password", h.Auth.ResetPassword)
				})
			})

			r.Route("/companies", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Company.List)
				r.Post("/", h.Company.Save)
				r.Post("/default", h.Company.EnsureDefault)
				r.Delete("/{id}", h.Company.Delete)
			})

			r.Route("/signatures", func(r chi.Router) {
				r.Post("/", h.Signature.Upload)
				r.Get("/{name}", h.Signature.Serve)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", h.Attendance.Submit)
				r.Get("/me", h.Attendance.ListMine)
				r.Get("/workers/{id}", h.Attendance.ListByWorker)
				r.With(middleware.AdminOnly).Get("/", h.Attendance.ListAll)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/me", h.Dashboard.Mine)
				r.Get("/workers/{id}", h.Dashboard.Worker)
				r.With(middleware.AdminOnly).Get("/admin", h.Dashboard.Admin)
			})

			r.Route("/reports/workers/{id}", func(r chi.Router) {
				r.Get("/", h.Report.Monthly)
				r.Get("/export", h.Report.ExportMonthly)
				r.Get("/months", h.Report.Months)
				r.Get("/export-all", h.Report.ExportAll)
			})
		})
	})
	return r
}
