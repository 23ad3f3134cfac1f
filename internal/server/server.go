// Package server exposes the lead submission HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inspectana/leadgen/internal/config"
	"github.com/inspectana/leadgen/internal/notify"
	"github.com/inspectana/leadgen/internal/store"
	"github.com/inspectana/leadgen/internal/submit"
)

// Server routes submission traffic to the pipeline and admin reads to the
// store.
type Server struct {
	router   *chi.Mux
	port     int
	pipeline *submit.Pipeline
	store    store.Store
	notifier notify.Notifier
}

// New builds the router with middleware and all routes registered.
func New(cfg config.ServerConfig, pipeline *submit.Pipeline, st store.Store, notifier notify.Notifier) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		port:     cfg.Port,
		pipeline: pipeline,
		store:    st,
		notifier: notifier,
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	limiter := newIPLimiter(cfg.SubmitRPS, cfg.SubmitBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiter.middleware)
			r.Post("/inspection-requests", s.handleCreateInspectionRequest)
			r.Post("/interest-leads", s.handleCreateInterestLead)
			r.Post("/notifications", s.handleRelayNotification)
		})
		r.Get("/inspection-requests", s.handleListInspectionRequests)
		r.Get("/interest-leads", s.handleListInterestLeads)
	})
	r.Get("/healthz", s.handleHealth)

	return s
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("http server listening", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		zap.L().Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server: shutdown")
		}
		return nil
	})
	return g.Wait()
}

// requestLogger logs each request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
