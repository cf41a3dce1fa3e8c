package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/xlsx"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/jsonstore"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/timeclock-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/timeclock-backend-go/internal/service/company"
	dashboardService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	workerService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/worker"
)

const version = "v1.0.0"

// repositories is one storage backend's set of repositories.
type repositories struct {
	workers   worker.WorkerRepository
	records   attendance.AttendanceRepository
	companies company.CompanyRepository
	tx        database.Transactor
	store     appHTTP.Pinger
	close     func()
}

func openJSON(cfg *config.Config) (*repositories, error) {
	store, err := jsonstore.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	return &repositories{
		workers:   jsonstore.NewWorkerRepository(store),
		records:   jsonstore.NewAttendanceRepository(store),
		companies: jsonstore.NewCompanyRepository(store),
		tx:        store,
		store:     store,
		close:     func() {},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*repositories, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &repositories{
		workers:   postgresql.NewWorkerRepository(db),
		records:   postgresql.NewAttendanceRepository(db),
		companies: postgresql.NewCompanyRepository(db),
		tx:        postgresql.NewTransactor(db),
		store:     db,
		close:     db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "timeclock"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos *repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		repos, err = openPostgres(ctx, cfg)
	default:
		repos, err = openJSON(cfg)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	defer repos.close()

	signatureStorage, err := storage.NewLocalStorage(cfg.Storage.SignatureDir, cfg.Storage.SignatureBaseURL)
	if err != nil {
		log.Fatal("Failed to initialize signature storage: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	fileService := file.NewFileService(signatureStorage, cfg.Storage.SignatureMaxWidth)
	authService := serviceAuth.NewAuthService(repos.workers, JWTService)
	workerSvc := workerService.NewWorkerService(repos.workers, repos.records, repos.companies, repos.tx)
	companyService := serviceCompany.NewCompanyService(repos.companies)
	attendanceSvc := attendanceService.NewAttendanceService(repos.records, repos.workers, hub)
	dashboardSvc := dashboardService.NewDashboardService(repos.records, repos.workers)
	reportSvc := reportService.NewReportService(repos.records, repos.workers, repos.companies, xlsx.NewRenderer(), fileService)

	if created, err := companyService.EnsureDefault(ctx); err != nil {
		log.Fatal("Failed to ensure default company: ", err)
	} else if created {
		slog.Info("Default company profile inserted")
	}

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(repos.records, repos.workers, hub, cfg.Cron.OpenShiftSweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		LogLevel:       slog.LevelDebug,
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Company:    appHTTP.NewCompanyHandler(companyService, fileService),
		Signature:  appHTTP.NewSignatureHandler(fileService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Event:      appHTTP.NewEventHandler(hub, JWTService),
		Health: appHTTP.NewHealthHandler(cfg.Storage.Driver, map[string]appHTTP.Pinger{
			"store":      repos.store,
			"signatures": fileService,
		}),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// event streams end when the process is told to stop
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "storage_driver", cfg.Storage.Driver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}
