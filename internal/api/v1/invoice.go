package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billcraft/billcraft/internal/api/dto"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/service"
)

type InvoiceHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

func NewInvoiceHandler(billingService service.BillingService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// RenderInvoice renders an invoice into a paginated PDF artifact, falling
// back to a simplified document when the templated pipeline fails.
// POST /v1/invoices/render
func (h *InvoiceHandler) RenderInvoice(c *gin.Context) {
	var req dto.RenderInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if req.Save {
		outcome, path, err := h.billingService.RenderAndSaveInvoice(ctx, req.TemplateID, req.Invoice)
		if err != nil {
			h.logger.Errorw("failed to render and save invoice", "error", err)
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, dto.NewRenderInvoiceResponse(outcome, path))
		return
	}

	outcome := h.billingService.RenderInvoice(ctx, req.TemplateID, req.Invoice)
	c.JSON(http.StatusOK, dto.NewRenderInvoiceResponse(outcome, ""))
}

// PreloadTemplates fetches and compiles the given templates so subsequent
// renders hit the cache.
// POST /v1/templates/preload
func (h *InvoiceHandler) PreloadTemplates(c *gin.Context) {
	var req dto.PreloadTemplatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	loaded := h.billingService.PreloadTemplates(c.Request.Context(), req.TemplateIDs)
	c.JSON(http.StatusOK, &dto.PreloadTemplatesResponse{Loaded: loaded})
}
