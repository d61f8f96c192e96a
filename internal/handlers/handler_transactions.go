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

type transactionHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
}

func newTransactionHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{entities: entities, ledger: ledger}
}

func registerTransactionRoutes(rg *gin.RouterGroup, h *transactionHandler) {
	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.recordTransaction)
	}
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	filter := store.TransactionFilter{
		Type:      domain.TransactionType(c.Query("type")),
		ProjectID: c.Query("projectID"),
		WorkerID:  c.Query("workerID"),
		Date:      c.Query("date"),
	}
	c.JSON(http.StatusOK, h.entities.ListTransactions(filter))
}

func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.RecordTransaction(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}
