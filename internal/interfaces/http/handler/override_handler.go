package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/ledger/backend/internal/application/billing"
)

// OverrideHandler manages per-client and per-item billing overrides
type OverrideHandler struct {
	BaseHandler
	overrides *appbilling.OverrideService
}

func NewOverrideHandler(overrides *appbilling.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrides: overrides}
}

// PutClient handles PUT /clients/:account/override
func (h *OverrideHandler) PutClient(c *gin.Context) {
	var req appbilling.ClientOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	override, err := h.overrides.PutClientOverride(c.Request.Context(), c.Param("account"), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, override)
}

// GetClient handles GET /clients/:account/override
func (h *OverrideHandler) GetClient(c *gin.Context) {
	override, err := h.overrides.GetClientOverride(c.Request.Context(), c.Param("account"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, override)
}

// DeleteClient handles DELETE /clients/:account/override
func (h *OverrideHandler) DeleteClient(c *gin.Context) {
	if err := h.overrides.DeleteClientOverride(c.Request.Context(), c.Param("account")); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// PutAsset handles PUT /clients/:account/overrides/assets/:assetID
func (h *OverrideHandler) PutAsset(c *gin.Context) {
	assetID, err := strconv.ParseInt(c.Param("assetID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "invalid asset id")
		return
	}

	var req appbilling.ItemOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	override, err := h.overrides.PutAssetOverride(c.Request.Context(), c.Param("account"), assetID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, override)
}

// PutUser handles PUT /clients/:account/overrides/users/:userID
func (h *OverrideHandler) PutUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "invalid user id")
		return
	}

	var req appbilling.ItemOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	override, err := h.overrides.PutUserOverride(c.Request.Context(), c.Param("account"), userID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, override)
}

// ListItems handles GET /clients/:account/overrides
func (h *OverrideHandler) ListItems(c *gin.Context) {
	assets, users, err := h.overrides.ListItemOverrides(c.Request.Context(), c.Param("account"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"assets": assets, "users": users})
}

// DeleteAsset handles DELETE /overrides/assets/:id
func (h *OverrideHandler) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid override id")
		return
	}
	if err := h.overrides.DeleteAssetOverride(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteUser handles DELETE /overrides/users/:id
func (h *OverrideHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid override id")
		return
	}
	if err := h.overrides.DeleteUserOverride(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
