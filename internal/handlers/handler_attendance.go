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

type attendanceHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
}

func newAttendanceHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade) *attendanceHandler {
	return &attendanceHandler{entities: entities, ledger: ledger}
}

func registerAttendanceRoutes(rg *gin.RouterGroup, h *attendanceHandler) {
	attendance := rg.Group("/attendance")
	{
		attendance.GET("", h.listAttendance)
		attendance.POST("", h.recordAttendance)
	}
}

func (h *attendanceHandler) listAttendance(c *gin.Context) {
	filter := store.AttendanceFilter{
		WorkerID:  c.Query("workerID"),
		ProjectID: c.Query("projectID"),
		Date:      c.Query("date"),
	}
	c.JSON(http.StatusOK, h.entities.ListAttendance(filter))
}

func (h *attendanceHandler) recordAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordAttendance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.RecordAttendance(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to record attendance")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}
