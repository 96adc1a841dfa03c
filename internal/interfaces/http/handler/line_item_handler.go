package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/ledger/backend/internal/application/billing"
)

// LineItemHandler manages custom recurring and one-off charges
type LineItemHandler struct {
	BaseHandler
	items *appbilling.LineItemService
}

func NewLineItemHandler(items *appbilling.LineItemService) *LineItemHandler {
	return &LineItemHandler{items: items}
}

// Create handles POST /clients/:account/line-items
func (h *LineItemHandler) Create(c *gin.Context) {
	var req appbilling.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Create(c.Request.Context(), c.Param("account"), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Update handles PUT /line-items/:id
func (h *LineItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid line item id")
		return
	}

	var req appbilling.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, item)
}

// List handles GET /clients/:account/line-items
func (h *LineItemHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context(), c.Param("account"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Delete handles DELETE /line-items/:id
func (h *LineItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid line item id")
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
