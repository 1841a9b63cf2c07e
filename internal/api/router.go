package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/billcraft/billcraft/internal/api/v1"
	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/rest/middleware"
	"github.com/billcraft/billcraft/internal/types"
)

type Handlers struct {
	Invoice *v1.InvoiceHandler
	Stats   *v1.StatsHandler
}

func NewHandlers(invoice *v1.InvoiceHandler, stats *v1.StatsHandler) Handlers {
	return Handlers{
		Invoice: invoice,
		Stats:   stats,
	}
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("/render", handlers.Invoice.RenderInvoice)
		invoices.POST("/stats", handlers.Stats.GetInvoiceStats)
	}

	// Template routes
	templates := router.Group("/templates")
	{
		templates.POST("/preload", handlers.Invoice.PreloadTemplates)
	}

	// Currency routes
	currency := router.Group("/currency")
	{
		currency.POST("/convert", handlers.Stats.ConvertAmount)
	}
}
