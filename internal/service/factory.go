package service

import (
	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/currency"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/renderer"
	"github.com/billcraft/billcraft/internal/template"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	Templates template.Registry
	Renderer  renderer.Renderer
	Rates     currency.RateTable
}

// NewServiceParams assembles the dependency container from providers
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	templates template.Registry,
	rend renderer.Renderer,
	rates currency.RateTable,
) ServiceParams {
	return ServiceParams{
		Logger:    log,
		Config:    cfg,
		Templates: templates,
		Renderer:  rend,
		Rates:     rates,
	}
}

// NewRateTable builds the conversion rate table from configuration
func NewRateTable(cfg *config.Configuration) (currency.RateTable, error) {
	return currency.NewRateTable(cfg.Rates.Entries)
}
