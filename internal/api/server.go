// Package api serves the recommendation and feedback use cases over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/outings/internal/app"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Config controls the HTTP surface.
type Config struct {
	CORSOrigins []string
	// SearchRatePerMinute caps POST /api/activities per client IP. Zero
	// disables the limit.
	SearchRatePerMinute int
}

type Server struct {
	recommend app.RecommendUseCase
	feedback  app.FeedbackUseCase
	gatherer  prometheus.Gatherer
	metrics   *httpMetrics
	logger    *slog.Logger
	cfg       Config
}

// NewServer builds the HTTP server. reg receives the HTTP metrics and gather
// serves /metrics; both are usually the same *prometheus.Registry.
func NewServer(
	recommend app.RecommendUseCase,
	feedback app.FeedbackUseCase,
	reg *prometheus.Registry,
	logger *slog.Logger,
	cfg Config,
) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		recommend: recommend,
		feedback:  feedback,
		gatherer:  reg,
		metrics:   newHTTPMetrics(reg),
		logger:    logger,
		cfg:       cfg,
	}
}

// Router returns the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.cfg.SearchRatePerMinute > 0 {
				r.Use(httprate.Limit(
					s.cfg.SearchRatePerMinute,
					time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(s.handleLimited),
				))
			}
			r.Post("/activities", s.handleActivities)
		})
		r.Post("/reactions", s.handleReactions)
		r.Get("/preferences", s.handleGetPreferences)
		r.Delete("/preferences", s.handleClearPreferences)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
