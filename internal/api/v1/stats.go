package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billcraft/billcraft/internal/api/dto"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/service"
)

type StatsHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

func NewStatsHandler(billingService service.BillingService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// GetInvoiceStats computes counts and amount totals for an invoice
// collection in a single display currency.
// POST /v1/invoices/stats
func (h *StatsHandler) GetInvoiceStats(c *gin.Context) {
	var req dto.InvoiceStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	snapshot, err := h.billingService.AggregateStats(c.Request.Context(), req.Invoices, req.DisplayCurrency)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInvoiceStatsResponse(snapshot))
}

// ConvertAmount converts an amount using the configured rate table; a
// missing rate returns the amount unconverted.
// POST /v1/currency/convert
func (h *StatsHandler) ConvertAmount(c *gin.Context) {
	var req dto.ConvertAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	converted := h.billingService.ConvertAmount(c.Request.Context(), req.ParsedAmount(), req.From, req.To)
	c.JSON(http.StatusOK, dto.NewConvertAmountResponse(&req, converted))
}
