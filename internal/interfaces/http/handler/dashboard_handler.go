package handler

import (
	"github.com/gin-gonic/gin"

	appbilling "github.com/ledger/backend/internal/application/billing"
)

// DashboardHandler serves the all-clients revenue overview
type DashboardHandler struct {
	BaseHandler
	dashboard *appbilling.DashboardService
}

func NewDashboardHandler(dashboard *appbilling.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview handles GET /dashboard/:year/:month
func (h *DashboardHandler) Overview(c *gin.Context) {
	period, err := periodFromParams(c)
	if err != nil {
		h.BadRequest(c, "invalid billing period")
		return
	}

	overview, err := h.dashboard.Overview(c.Request.Context(), period)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, overview)
}
