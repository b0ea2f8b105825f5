package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/royaltyx/royaltyx-api/internal/api/handler"
	"github.com/royaltyx/royaltyx-api/internal/api/handler/router"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/royaltyx/royaltyx-api/internal/scheduler"
	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing"
	"github.com/royaltyx/royaltyx-api/internal/usecases/authenticating"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"github.com/royaltyx/royaltyx-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	analyzer analyzing.Analyzer,
	authenticator authenticating.Authenticator,
	recordPurgeService *scheduler.RecordPurgeService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		RecordPurgeService: recordPurgeService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, db, analyzer, authenticator, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler assembles the routes behind the global middleware chain.
func NewHandler(
	config *config.Config,
	db handler.Pinger,
	analyzer analyzing.Analyzer,
	authenticator authenticating.Authenticator,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Analytics(analyzer)...),
		router.WithRoutes(handler.Earnings(analyzer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
		middleware.RateLimit(middleware.NewRateLimiter(
			config.RateLimit.Enabled, config.RateLimit.RPS, config.RateLimit.Burst,
		)),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("interrupt signal received")
	case <-ctx.Done():
		log.L.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.Infof("shutting down, waiting up to %s for in-flight requests", shutdownTimeout)

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("server shutdown failed")
		return err
	}

	log.L.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
