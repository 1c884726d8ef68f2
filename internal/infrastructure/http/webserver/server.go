// Package webserver provides the HTTP server for the recipe assistant
// frontend API.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/dishcart/assistant/internal/infrastructure/monitoring"
	"github.com/dishcart/assistant/internal/ports/inbound"
	"github.com/dishcart/assistant/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// WebServer represents the frontend HTTP server
type WebServer struct {
	config       *config.Config
	logger       *zap.Logger
	server       *http.Server
	router       *chi.Mux
	sessions     *inboundSessions
	sessionStore *SessionStore
	healthCheck  *healthcheck.HealthCheck
	metrics      *monitoring.MetricsCollector
	validate     *validator.Validate
}

// inboundSessions narrows the server's dependency to the inbound port
type inboundSessions struct {
	inbound.SessionService
}

// NewWebServer creates a new web server instance
func NewWebServer(
	cfg *config.Config,
	log *zap.Logger,
	sessionService inbound.SessionService,
	sessionStore *SessionStore,
	healthCheck *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) *WebServer {
	server := &WebServer{
		config:       cfg,
		logger:       log.Named("webserver"),
		sessions:     &inboundSessions{sessionService},
		sessionStore: sessionStore,
		healthCheck:  healthCheck,
		metrics:      metrics,
		validate:     validator.New(),
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the frontend routes
func (s *WebServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if s.config.Server.EnableMetrics {
		r.Use(s.metrics.Middleware)
	}

	// Health check endpoints
	r.Get("/health", s.healthCheck.Handler())
	r.Get("/ready", s.healthCheck.ReadinessHandler())
	r.Get("/live", s.healthCheck.LivenessHandler())

	if s.config.Server.EnableMetrics {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Session workflow API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/session", s.handleSessionView)
		r.Post("/chat", s.handleSubmitQuery)

		r.Post("/ingredient/select", s.handleSelectIngredient)
		r.Post("/ingredient/cancel", s.handleCancelBrandSelection)

		r.Get("/cart", s.handleCartView)
		r.Post("/cart/items", s.handleAddBrand)
		r.Put("/cart/items/{index}", s.handleUpdateQuantity)
		r.Delete("/cart/items/{index}", s.handleRemoveLine)

		r.Post("/checkout/open", s.handleOpenCheckout)
		r.Post("/checkout/cancel", s.handleCancelCheckout)
		r.Post("/checkout/confirm", s.handleConfirmCheckout)

		r.Get("/orders/last", s.handleLastOrder)
		r.Post("/orders/toggle", s.handleToggleOrderSummary)
	})

	return r
}

// sessionMiddleware attaches a browser session to every API request,
// creating one on first contact.
func (s *WebServer) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessionStore.Get(r)
		if err != nil {
			session = s.sessionStore.New()
			s.sessionStore.Save(w, session)
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, session.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionContextKey struct{}

// sessionID extracts the session ID attached by the middleware
func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionContextKey{}).(string)
	return id
}

// Start starts the HTTP server
func (s *WebServer) Start() error {
	s.logger.Info("Starting web server",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Router exposes the router for tests
func (s *WebServer) Router() http.Handler {
	return s.router
}
