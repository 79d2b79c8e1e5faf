package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"gpa-service/internal/auth"
	"gpa-service/internal/config"
	"gpa-service/internal/db"
	"gpa-service/internal/export"
	"gpa-service/internal/health"
	"gpa-service/internal/kafka"
	"gpa-service/internal/logger"
	"gpa-service/internal/messaging"
	"gpa-service/internal/metrics"
	"gpa-service/internal/middleware"
	"gpa-service/internal/registration"
	"gpa-service/internal/result"
	"gpa-service/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type App struct {
	config        *config.Config
	router        chi.Router
	server        *http.Server
	logger        *slog.Logger
	publisher     result.Publisher
	meterProvider *sdkmetric.MeterProvider
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	// Metrics export is optional; the service runs fine without a collector
	if cfg.Telemetry.Enabled {
		mp, err := telemetry.InitMeterProvider(context.Background(), ServiceName, Version, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize telemetry", "error", err)
		} else {
			app.meterProvider = mp
		}
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics, using no-op", "error", err)
		m = metrics.NewMock()
	}

	database := db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database, (*result.Result)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no session required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Result-saved event publisher (optional)
	app.publisher = newPublisher(cfg.Events, slogLogger)

	// Session + domain wiring
	sessions := registration.NewManager()
	tokens := auth.NewTokens(cfg.Session.Secret, cfg.Session.TTLMinutes)

	resultRepo := result.NewRepository(database, m)
	resultService := result.NewService(resultRepo, app.publisher, slogLogger)

	authHandler := auth.NewHandler(tokens, sessions, resultService, slogLogger, m)
	authHandler.RegisterRoutes(app.router)

	registrationHandler := registration.NewHandler(sessions, slogLogger, m)
	resultHandler := result.NewHandler(resultService, sessions, slogLogger, m)
	exportHandler := export.NewHandler(sessions, slogLogger, m)

	// Everything under /api requires a signed-in session
	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(tokens, slogLogger))
		registrationHandler.RegisterRoutes(r)
		resultHandler.RegisterRoutes(r)
		exportHandler.RegisterRoutes(r)
	})

	slogLogger.Info("application initialized successfully")

	return app
}

// newPublisher builds the configured event backend. A broken or missing
// backend only disables events; it never blocks startup.
func newPublisher(cfg config.EventsConfig, logger *slog.Logger) result.Publisher {
	switch cfg.Backend {
	case "nats":
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return producer
	case "kafka":
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer
	case "":
		logger.Info("event publishing disabled")
		return nil
	default:
		logger.Warn("unknown events backend, publishing disabled", "backend", cfg.Backend)
		return nil
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close event publisher", "error", err)
		}
	}
	telemetry.Shutdown(ctx, a.meterProvider, a.logger)

	return a.server.Shutdown(ctx)
}
