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

type workReportHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
}

func newWorkReportHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade) *workReportHandler {
	return &workReportHandler{entities: entities, ledger: ledger}
}

func registerWorkReportRoutes(rg *gin.RouterGroup, h *workReportHandler) {
	reports := rg.Group("/work-reports")
	{
		reports.GET("", h.listWorkReports)
		reports.POST("", h.recordWorkReport)
	}
}

func (h *workReportHandler) listWorkReports(c *gin.Context) {
	c.JSON(http.StatusOK, h.entities.ListWorkReports(c.Query("projectID")))
}

func (h *workReportHandler) recordWorkReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordWorkReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	submittedBy, _ := middleware.GetUserIDFromContext(c)
	receipt, err := h.ledger.RecordWorkReport(c.Request.Context(), req.ToDomain(submittedBy))
	if err != nil {
		respondError(c, err, "Failed to record work report")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}
