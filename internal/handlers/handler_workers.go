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

// workerHandler handles worker profile reads, creation and payments.
type workerHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
	balance  portssvc.BalanceSvcFacade
}

func newWorkerHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade, balance portssvc.BalanceSvcFacade) *workerHandler {
	return &workerHandler{entities: entities, ledger: ledger, balance: balance}
}

func registerWorkerRoutes(rg *gin.RouterGroup, h *workerHandler) {
	workers := rg.Group("/workers")
	{
		workers.GET("", h.listWorkers)
		workers.POST("", h.createWorker)
		workers.GET("/:workerID/balance", h.getBalance)
		workers.POST("/:workerID/payments", h.payWorker)
	}
}

// listWorkers returns all profiles, optionally narrowed by role. Served from
// the entity store; never blocks on the remote store.
func (h *workerHandler) listWorkers(c *gin.Context) {
	role := domain.Role(c.Query("role"))
	c.JSON(http.StatusOK, h.entities.ListProfiles(role))
}

func (h *workerHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.CreateWorker(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to create worker")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}

// getBalance returns the ledger-computed outstanding balance for a worker.
func (h *workerHandler) getBalance(c *gin.Context) {
	workerID := c.Param("workerID")
	if _, ok := h.entities.GetProfile(workerID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		WorkerID: workerID,
		Balance:  h.balance.ComputeBalance(c.Request.Context(), workerID),
	})
}

// payWorker records a salary payment against the worker's balance. The
// response reflects the already-applied local state; remote persistence may
// still be in flight.
func (h *workerHandler) payWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workerID := c.Param("workerID")

	var req dto.PayWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.PayWorker(c.Request.Context(), workerID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err, "Failed to pay worker")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mutation": dto.NewMutationResponse(receipt),
		"balance":  h.balance.ComputeBalance(c.Request.Context(), workerID),
	})
}
