package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/billcraft/billcraft/internal/api"
	v1 "github.com/billcraft/billcraft/internal/api/v1"
	"github.com/billcraft/billcraft/internal/cache"
	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/httpclient"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/renderer"
	"github.com/billcraft/billcraft/internal/service"
	"github.com/billcraft/billcraft/internal/surface"
	"github.com/billcraft/billcraft/internal/template"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Template pipeline
			provideTemplateSource,
			template.NewRegistry,

			// Rendering surfaces
			surface.NewRegistry,
			surface.NewImageFetcher,
			surface.NewRasterizer,

			// Document generation
			renderer.NewEncoder,
			renderer.NewFallbackBuilder,
			renderer.New,

			// Services
			service.NewRateTable,
			service.NewServiceParams,
			service.NewBillingService,

			// Handlers
			v1.NewInvoiceHandler,
			v1.NewStatsHandler,
			api.NewHandlers,
			api.NewRouter,
		),
		fx.Invoke(startAPIServer),
	)

	app.Run()
}

func provideTemplateSource(cfg *config.Configuration, client httpclient.Client) template.Source {
	return template.NewHTTPSource(cfg.Templates.BaseURL, client)
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
