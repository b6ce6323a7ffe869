package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/activity/publisher"
	assignmentRouter "github.com/festy23/task_capacity/internal/assignment/router"
	assignmentService "github.com/festy23/task_capacity/internal/assignment/service"
	"github.com/festy23/task_capacity/internal/assignment/store"
	appConfig "github.com/festy23/task_capacity/internal/config"
	dashboardRouter "github.com/festy23/task_capacity/internal/dashboard/router"
	"github.com/festy23/task_capacity/internal/database/database"
	"github.com/festy23/task_capacity/internal/health"
	"github.com/festy23/task_capacity/internal/metrics"
	"github.com/festy23/task_capacity/internal/middleware"
	projectRouter "github.com/festy23/task_capacity/internal/project/router"
	taskRouter "github.com/festy23/task_capacity/internal/task/router"
	teamRouter "github.com/festy23/task_capacity/internal/team/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(log, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg.Session, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	pub, err := newPublisher(ctx, cfg.Messaging, m, log)
	if err != nil {
		return err
	}
	defer pub.Close()

	gin.SetMode(cfg.GinMode)
	r := newRouter(db, log, app{
		registry:   registry,
		metrics:    m,
		sessions:   sessions,
		publisher:  pub,
		sessionTTL: cfg.Session.TTL,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Infow("server stopped")
	return nil
}

// app holds the process-wide collaborators shared by the routes.
type app struct {
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	sessions   store.Store
	publisher  publisher.Publisher
	sessionTTL time.Duration
}

// newRouter builds the engine with middleware and every module's routes.
func newRouter(db *gorm.DB, log *zap.SugaredLogger, a app) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Metrics(a.metrics))

	healthHandler := health.New(db, log,
		health.CheckFunc{Component: "sessions", Fn: a.sessions.Check},
		health.CheckFunc{Component: "events", Fn: a.publisher.Check},
	)
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	teamRouter.RegisterRoutes(r, db, log)
	projectRouter.RegisterRoutes(r, db, log)
	taskRouter.RegisterRoutes(r, db, log)
	assignmentRouter.RegisterRoutes(r, db, log, assignmentService.Dependencies{
		Sessions:   a.sessions,
		Publisher:  a.publisher,
		Metrics:    a.metrics,
		SessionTTL: a.sessionTTL,
	})
	dashboardRouter.RegisterRoutes(r, db, log)

	return r
}

func newSessionStore(ctx context.Context, cfg appConfig.SessionConfig, log *zap.SugaredLogger) (store.Store, func(), error) {
	if cfg.Store != appConfig.SessionStoreRedis {
		log.Infow("negotiation sessions kept in memory")
		return store.NewMemory(), func() {}, nil
	}

	rs, err := store.NewRedis(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("negotiation sessions kept in redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return rs, func() {
		if err := rs.Close(); err != nil {
			log.Warnw("failed to close redis", "error", err)
		}
	}, nil
}

func newPublisher(
	ctx context.Context,
	cfg appConfig.MessagingConfig,
	m *metrics.Metrics,
	log *zap.SugaredLogger,
) (publisher.Publisher, error) {
	if !cfg.Enabled() {
		log.Infow("activity event stream disabled")
		return publisher.Nop{}, nil
	}
	pub, err := publisher.NewNATS(ctx, cfg, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return pub, nil
}
