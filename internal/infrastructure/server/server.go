package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apihttp "github.com/GriffinCanCode/DevOS/backend/internal/api/http"
	"github.com/GriffinCanCode/DevOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/DevOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/DevOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/DevOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/DevOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/content"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/reasoning"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	httpSrv  *http.Server
	registry *desktop.Registry
	content  *content.Repository
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing DevOS Server",
		zap.String("port", cfg.Server.Port),
		zap.String("content_dir", cfg.Content.Dir),
		zap.Bool("remote_reasoning", cfg.Reasoning.URL != ""),
	)

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	repo, err := content.Open(cfg.Content.Dir, cfg.Content.Pattern, logger.Component("content"))
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	summary := repo.Summary()
	logger.Info("Portfolio loaded",
		zap.String("owner", summary.Owner),
		zap.Int("projects", summary.Projects),
	)

	translator, reasoningState := newTranslator(cfg.Reasoning, repo, metrics, logger)

	registry := desktop.NewRegistry(repo, translator, desktop.Options{
		Layout: window.Layout{
			ScreenWidth:  cfg.Desktop.ScreenWidth,
			ScreenHeight: cfg.Desktop.ScreenHeight,
			WindowWidth:  cfg.Desktop.WindowWidth,
			WindowHeight: cfg.Desktop.WindowHeight,
			TopBoundary:  cfg.Desktop.TopBoundary,
			CascadeStep:  cfg.Desktop.CascadeStep,
			CascadeWrap:  cfg.Desktop.CascadeWrap,
		},
		IdleTTL:     cfg.Desktop.SessionIdleTTL,
		MaxSessions: cfg.Desktop.MaxSessions,
	}).
		WithMetrics(metrics).
		WithLogger(logger.Component("desktop"))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}
	router.Use(middleware.Gzip("/metrics"))

	handlers := apihttp.NewHandlers(repo, registry, metrics).
		WithLogger(logger.Component("api")).
		WithReasoningState(reasoningState)
	handlers.Register(router)

	wsHandler := ws.NewHandler(registry, metrics, logger.Component("ws"))
	router.GET("/desktops/:sid/stream", wsHandler.HandleConnection)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		httpSrv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: registry,
		content:  repo,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// newTranslator picks the remote reasoning client when a URL is configured
// and the offline heuristic otherwise
func newTranslator(cfg config.ReasoningConfig, repo *content.Repository, metrics *monitoring.Metrics, logger *logging.Logger) (terminal.Translator, func() string) {
	if cfg.URL == "" {
		logger.Info("Using offline heuristic translator")
		return reasoning.NewHeuristic(repo), func() string { return "heuristic" }
	}

	client := reasoning.NewClient(reasoning.Config{
		URL:     cfg.URL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
	}, repo).
		WithMetrics(metrics).
		WithLogger(logger.Component("reasoning"))

	logger.Info("Using remote reasoning service", zap.String("url", cfg.URL))
	return client, func() string { return client.BreakerState().String() }
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP and sweeps idle desktops until ctx is cancelled,
// then shuts both down gracefully
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.registry.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})

	return g.Wait()
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.registry.Shutdown()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
