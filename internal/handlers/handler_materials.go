package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/dto"
	"github.com/sitebook/backend/internal/middleware"
	"github.com/sitebook/backend/internal/store"
)

type materialHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
}

func newMaterialHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade) *materialHandler {
	return &materialHandler{entities: entities, ledger: ledger}
}

func registerMaterialRoutes(rg *gin.RouterGroup, h *materialHandler) {
	materials := rg.Group("/materials")
	{
		materials.GET("", h.listMaterialLogs)
		materials.POST("", h.recordMaterialLog)
	}
}

func (h *materialHandler) listMaterialLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.entities.ListMaterialLogs(c.Query("projectID")))
}

func (h *materialHandler) recordMaterialLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMaterialLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordMaterialLog", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	submittedBy, _ := middleware.GetUserIDFromContext(c)
	receipt, err := h.ledger.RecordMaterialLog(c.Request.Context(), req.ToDomain(submittedBy))
	if err != nil {
		respondError(c, err, "Failed to record material log")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}
