// Package main provides the entry point for the DishCart assistant service.
// It serves the session API backing the recipe-to-cart shopping flow and
// proxies recipe queries to the assistant backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dishcart/assistant/internal/application/session"
	"github.com/dishcart/assistant/internal/infrastructure/assets"
	"github.com/dishcart/assistant/internal/infrastructure/catalog"
	"github.com/dishcart/assistant/internal/infrastructure/chat"
	"github.com/dishcart/assistant/internal/infrastructure/config"
	"github.com/dishcart/assistant/internal/infrastructure/http/webserver"
	"github.com/dishcart/assistant/internal/infrastructure/monitoring"
	"github.com/dishcart/assistant/internal/ports/inbound"
	"github.com/dishcart/assistant/internal/ports/outbound"
	"github.com/dishcart/assistant/pkg/healthcheck"
	"github.com/dishcart/assistant/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		fx.NopLogger,

		// Configuration
		fx.Provide(func() (*config.Config, error) {
			return config.Load(os.Getenv("DISHCART_CONFIG"))
		}),

		// Logger
		fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(logger.Config{
				Level:       cfg.App.LogLevel,
				Format:      cfg.App.LogFormat,
				Development: cfg.App.Debug,
			})
		}),

		// Outbound adapters
		fx.Provide(chat.NewClient),
		fx.Provide(catalog.NewStaticCatalog),
		fx.Provide(assets.NewResolver),

		// Session use cases
		fx.Provide(func(
			cfg *config.Config,
			log *zap.Logger,
			queryClient outbound.RecipeQueryClient,
			offers outbound.OfferCatalog,
			images outbound.ImageResolver,
		) inbound.SessionService {
			return session.NewService(queryClient, offers, images, session.Config{
				ClearRecipeOnCheckout: cfg.Features.ClearRecipeOnCheckout,
			}, log)
		}),

		// Session Store
		fx.Provide(webserver.NewSessionStore),

		// Monitoring
		fx.Provide(monitoring.NewMetricsCollector),

		// Health Check
		fx.Provide(func(cfg *config.Config, log *zap.Logger) *healthcheck.HealthCheck {
			return healthcheck.New(cfg.App.Version, log)
		}),

		// Web Server
		fx.Provide(webserver.NewWebServer),

		// Lifecycle
		fx.Invoke(wireSessionExpiry),
		fx.Invoke(registerLifecycleHooks),
		fx.Invoke(initializeHealthChecks),
	)

	app.Run()
}

// wireSessionExpiry drops application session state when the cookie
// session it belongs to expires.
func wireSessionExpiry(store *webserver.SessionStore, svc inbound.SessionService) {
	if dropper, ok := svc.(interface{ Drop(sessionID string) }); ok {
		store.OnExpire = dropper.Drop
	}
}

func registerLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	server *webserver.WebServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting DishCart assistant server",
				zap.Int("port", cfg.Server.Port),
				zap.String("environment", cfg.App.Environment),
				zap.String("chat_endpoint", cfg.ChatEndpoint()),
			)

			fmt.Printf("DishCart assistant listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Web server failed to start", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down DishCart assistant server...")
			return server.Shutdown(ctx)
		},
	})
}

// initializeHealthChecks registers liveness checks for the service and
// its assistant backend dependency.
func initializeHealthChecks(
	cfg *config.Config,
	log *zap.Logger,
	hc *healthcheck.HealthCheck,
) {
	log.Info("Initializing health checks")

	hc.Register("system", healthcheck.NewCustomChecker("system", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		return healthcheck.StatusHealthy, "System operational", map[string]interface{}{
			"service":     "dishcart-assistant",
			"version":     cfg.App.Version,
			"environment": cfg.App.Environment,
		}
	}))

	hc.Register("assistant_backend", healthcheck.NewExternalServiceChecker(
		"assistant_backend",
		cfg.Chat.BaseURL,
		cfg.Chat.Timeout,
	))
}
