package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/ledger/backend/internal/application/billing"
)

// ManualItemHandler manages hand-entered billable assets and users
type ManualItemHandler struct {
	BaseHandler
	items *appbilling.ManualItemService
}

func NewManualItemHandler(items *appbilling.ManualItemService) *ManualItemHandler {
	return &ManualItemHandler{items: items}
}

// AddAsset handles POST /clients/:account/manual-assets
func (h *ManualItemHandler) AddAsset(c *gin.Context) {
	var req appbilling.ManualAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	asset, err := h.items.AddAsset(c.Request.Context(), c.Param("account"), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, asset)
}

// AddUser handles POST /clients/:account/manual-users
func (h *ManualItemHandler) AddUser(c *gin.Context) {
	var req appbilling.ManualUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.items.AddUser(c.Request.Context(), c.Param("account"), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, user)
}

// ListAssets handles GET /clients/:account/manual-assets
func (h *ManualItemHandler) ListAssets(c *gin.Context) {
	assets, err := h.items.ListAssets(c.Request.Context(), c.Param("account"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, assets)
}

// ListUsers handles GET /clients/:account/manual-users
func (h *ManualItemHandler) ListUsers(c *gin.Context) {
	users, err := h.items.ListUsers(c.Request.Context(), c.Param("account"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, users)
}

// DeleteAsset handles DELETE /manual-assets/:id
func (h *ManualItemHandler) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid manual asset id")
		return
	}
	if err := h.items.DeleteAsset(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteUser handles DELETE /manual-users/:id
func (h *ManualItemHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid manual user id")
		return
	}
	if err := h.items.DeleteUser(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
