// Package api exposes the prop engine and bankroll tracker over HTTP.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/health"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/service"
)

// Server holds the HTTP handlers and their dependencies
type Server struct {
	props    *service.PropService
	bankroll *service.BankrollService
	health   *health.Checker
	logger   *logrus.Logger
	cfg      *config.Config
	router   chi.Router
}

// NewServer creates the API server and builds its routes
func NewServer(cfg *config.Config, props *service.PropService, bankroll *service.BankrollService, checker *health.Checker, logger *logrus.Logger) *Server {
	s := &Server{
		props:    props,
		bankroll: bankroll,
		health:   checker,
		logger:   logger,
		cfg:      cfg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer returns an http.Server listening on the configured port
func (s *Server) HTTPServer() *http.Server {
	timeout := s.cfg.RequestTimeout()
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.health.HandleHealth)
	r.Get("/live", s.health.HandleLive)
	r.Get("/ready", s.health.HandleReady)
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(recordMetrics)

		r.Post("/props/evaluate", s.handleEvaluateProp)
		r.Get("/odds/implied", s.handleImpliedProbability)
		r.Post("/kelly", s.handleKelly)
		r.Post("/sharpe", s.handleSharpe)

		r.Route("/bankroll", func(r chi.Router) {
			r.Get("/summary", s.handleBankrollSummary)
			r.Get("/curve", s.handleEquityCurve)
			r.Get("/risk", s.handleRiskStatus)
			r.Get("/stake", s.handleRecommendStake)
			r.Get("/export", s.handleExport)
			r.Get("/bets", s.handleListBets)
			r.Post("/bets", s.handleRecordBet)
			r.Post("/bets/{id}/settle", s.handleSettleBet)
		})
	})

	return r
}
