package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rhportal/internal/domain/announcement"
	"rhportal/internal/domain/auth"
	"rhportal/internal/domain/document"
	"rhportal/internal/domain/employee"
	"rhportal/internal/domain/reports"
	"rhportal/internal/platform/config"
	cryptoutil "rhportal/internal/platform/crypto"
	"rhportal/internal/platform/db"
	"rhportal/internal/platform/metrics"
	"rhportal/internal/platform/storage"
	"rhportal/internal/transport/http/api"
	"rhportal/internal/transport/http/handlers/announcements"
	authhandler "rhportal/internal/transport/http/handlers/auth"
	"rhportal/internal/transport/http/handlers/dashboard"
	"rhportal/internal/transport/http/handlers/documents"
	"rhportal/internal/transport/http/handlers/employees"
	"rhportal/internal/transport/http/middleware"
)

// App owns the connection pool and router. The pool is opened once in New and
// closed once in Close; nothing else manages its lifecycle.
type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  chi.Router
	metrics *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}

	classifier := auth.NewClassifier(cfg.AdminTitles)

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg, classifier); err != nil {
			pool.Close()
			return nil, err
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}

	blobs, err := storage.New(cfg.UploadDir)
	if err != nil {
		pool.Close()
		return nil, err
	}

	app := &App{Config: cfg, DB: pool}
	if cfg.MetricsEnabled {
		app.metrics = metrics.New()
	}

	authStore := auth.NewStore(pool)
	authService := auth.NewService(authStore, classifier, cfg.JWTSecret, cfg.TokenTTL)
	employeeStore := employee.NewStore(pool, cryptoSvc)
	documentStore := document.NewStore(pool, cfg.PayslipUniquePerPeriod)
	announcementStore := announcement.NewStore(pool)
	reportStore := reports.NewStore(pool)

	authHandler := authhandler.NewHandler(authService)
	employeeHandler := employees.NewHandler(employeeStore, documentStore, blobs)
	documentHandler := documents.NewHandler(documentStore, blobs)
	announcementHandler := announcements.NewHandler(announcementStore)
	dashboardHandler := dashboard.NewHandler(reportStore)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Logging(app.metrics))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	r.Get("/healthz", app.healthz)
	r.Get("/readyz", app.readyz)

	loginLimiter := middleware.NewLimiter(10, time.Minute)
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.With(middleware.LoginRateLimit(loginLimiter)).Mount("/auth", authHandler.Routes())

		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(cfg.JWTSecret))
			authed.Use(middleware.RateLimit(middleware.NewLimiter(cfg.RateLimitPerMinute, time.Minute)))

			authed.Get("/me", employeeHandler.Me)
			authed.Mount("/employees", employeeHandler.Routes())
			authed.Mount("/certificates", documentHandler.Routes())
			authed.Mount("/announcements", announcementHandler.Routes())
			authed.Mount("/dashboard", dashboardHandler.Routes())

			authed.With(middleware.RequireAdmin).Get("/metrics", app.metricsSnapshot)
		})
	})

	fileServer := http.StripPrefix("/uploads/", http.FileServer(blobs.FileSystem()))
	r.With(middleware.RequireAuth(cfg.JWTSecret)).Get("/uploads/*", fileServer.ServeHTTP)

	app.Router = r
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
}

func (a *App) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.DB.Ping(ctx); err != nil {
		api.Fail(w, http.StatusServiceUnavailable, "internal_error", "database unreachable", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "ready"}, middleware.GetRequestID(r.Context()))
}

func (a *App) metricsSnapshot(w http.ResponseWriter, r *http.Request) {
	if a.metrics == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "metrics collection is disabled", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, a.metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// down gracefully and drains the pool.
func Run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
