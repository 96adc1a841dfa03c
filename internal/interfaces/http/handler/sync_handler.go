package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/ledger/backend/internal/application/inventory"
	"github.com/ledger/backend/internal/domain/inventory"
)

// SyncHandler triggers upstream pulls and reports their status
type SyncHandler struct {
	BaseHandler
	sync *appinventory.SyncService
}

func NewSyncHandler(sync *appinventory.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Trigger handles POST /sync/:job
func (h *SyncHandler) Trigger(c *gin.Context) {
	job := inventory.SyncJob(c.Param("job"))
	if !job.IsValid() {
		h.BadRequest(c, "unknown sync job")
		return
	}

	if err := h.sync.Run(c.Request.Context(), job); err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"job": job, "status": "completed"})
}

// Status handles GET /sync/status
func (h *SyncHandler) Status(c *gin.Context) {
	runs, err := h.sync.Statuses(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, runs)
}
