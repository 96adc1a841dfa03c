package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/ledger/backend/internal/application/billing"
)

// PlanHandler exposes the billing plan catalog
type PlanHandler struct {
	BaseHandler
	plans *appbilling.PlanService
}

func NewPlanHandler(plans *appbilling.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// Create handles POST /plans
func (h *PlanHandler) Create(c *gin.Context) {
	var req appbilling.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, plan)
}

// Update handles PUT /plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid plan id")
		return
	}

	var req appbilling.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.plans.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, plan)
}

// Get handles GET /plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid plan id")
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, plan)
}

// List handles GET /plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, plans)
}

// Delete handles DELETE /plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid plan id")
		return
	}

	if err := h.plans.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
