package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	prommetrics "github.com/emiliopalmerini/labstats/internal/adapters/prometheus"
	"github.com/emiliopalmerini/labstats/internal/ports"
	"github.com/emiliopalmerini/labstats/internal/statistics"
)

type Server struct {
	router  *http.ServeMux
	port    int
	service *statistics.Service
	users   ports.UserRepository
	logger  *zap.Logger
	metrics *prommetrics.Metrics
}

func NewServer(
	port int,
	service *statistics.Service,
	users ports.UserRepository,
	logger *zap.Logger,
	metrics *prommetrics.Metrics,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = prommetrics.NewMetrics()
	}
	s := &Server{
		router:  http.NewServeMux(),
		port:    port,
		service: service,
		users:   users,
		logger:  logger,
		metrics: metrics,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("GET /metrics", s.metrics.Handler())

	// Experiment statistics
	s.router.HandleFunc("GET /api/statistics/experiments/overall", s.handleOverallStatistics)
	s.router.HandleFunc("GET /api/statistics/experiments/time-range", s.handleTimeRangeStatistics)
	s.router.HandleFunc("GET /api/statistics/experiments/{id}", s.handleExperimentStatistics)
	// /user/{userId}, /type/{typeId} and /{id}/detailed overlap as ServeMux
	// patterns, so one two-segment route dispatches all three.
	s.router.HandleFunc("GET /api/statistics/experiments/{scope}/{value}", s.handleExperimentSubroute)

	// User statistics
	s.router.HandleFunc("GET /api/statistics/users/count", s.handleUserCount)
	s.router.HandleFunc("GET /api/statistics/users/{userId}/experiments", s.handleUserExperiments)

	// Comprehensive reports
	s.router.HandleFunc("GET /api/statistics/comprehensive/summary", s.handleSystemSummary)
	s.router.HandleFunc("GET /api/statistics/comprehensive/user-activity", s.handleUserActivity)
	s.router.HandleFunc("GET /api/statistics/comprehensive/user/{userId}", s.handleUserReport)

	// Pages
	s.router.HandleFunc("GET /reports/overview", s.handleOverviewReport)
}

// Handler returns the router wrapped in request id, logging and metrics middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withObservability(s.router))
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", zap.String("addr", fmt.Sprintf("http://localhost:%d", s.port)))

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}
