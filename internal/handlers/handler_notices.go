package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitebook/backend/internal/core/domain"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/dto"
	"github.com/sitebook/backend/internal/middleware"
	"github.com/sitebook/backend/internal/store"
)

type noticeHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
}

func newNoticeHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade) *noticeHandler {
	return &noticeHandler{entities: entities, ledger: ledger}
}

func registerNoticeRoutes(rg *gin.RouterGroup, h *noticeHandler) {
	notices := rg.Group("/notices")
	{
		notices.GET("", h.listNotices)
		notices.POST("", h.postNotice)
	}
}

func (h *noticeHandler) listNotices(c *gin.Context) {
	c.JSON(http.StatusOK, h.entities.ListNotices())
}

func (h *noticeHandler) postNotice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postNotice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.PostNotice(c.Request.Context(), domain.PublicNotice{Message: req.Message})
	if err != nil {
		respondError(c, err, "Failed to post notice")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}
