package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/ledger/backend/internal/application/billing"
	"github.com/ledger/backend/internal/domain/billing"
)

// InvoiceHandler exposes invoice computation and the stored draft lifecycle
type InvoiceHandler struct {
	BaseHandler
	invoices *appbilling.InvoiceService
}

func NewInvoiceHandler(invoices *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func periodFromParams(c *gin.Context) (billing.Period, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return billing.Period{}, err
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return billing.Period{}, err
	}
	return billing.NewPeriod(year, month)
}

// Compute handles POST /clients/:account/invoices/:year/:month/compute.
// The result is returned without persisting anything.
func (h *InvoiceHandler) Compute(c *gin.Context) {
	period, err := periodFromParams(c)
	if err != nil {
		h.BadRequest(c, "invalid billing period")
		return
	}

	result, err := h.invoices.Compute(c.Request.Context(), c.Param("account"), period)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// SaveDraft handles POST /clients/:account/invoices/:year/:month/draft
func (h *InvoiceHandler) SaveDraft(c *gin.Context) {
	period, err := periodFromParams(c)
	if err != nil {
		h.BadRequest(c, "invalid billing period")
		return
	}

	invoice, err := h.invoices.SaveDraft(c.Request.Context(), c.Param("account"), period)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Finalize handles POST /invoices/:id/finalize
func (h *InvoiceHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid invoice id")
		return
	}

	invoice, err := h.invoices.Finalize(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Get handles GET /clients/:account/invoices/:year/:month
func (h *InvoiceHandler) Get(c *gin.Context) {
	period, err := periodFromParams(c)
	if err != nil {
		h.BadRequest(c, "invalid billing period")
		return
	}

	invoice, err := h.invoices.GetStored(c.Request.Context(), c.Param("account"), period)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, invoice)
}
