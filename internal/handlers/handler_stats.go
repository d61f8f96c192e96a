package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitebook/backend/internal/core/domain"
	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/dto"
)

type statsHandler struct {
	stats portssvc.StatsSvcFacade
	sync  portssvc.SyncSvcFacade
}

func newStatsHandler(stats portssvc.StatsSvcFacade, sync portssvc.SyncSvcFacade) *statsHandler {
	return &statsHandler{stats: stats, sync: sync}
}

func registerStatsRoutes(rg *gin.RouterGroup, h *statsHandler) {
	rg.GET("/stats/daily", h.dailyStats)
	rg.GET("/sync/status", h.syncStatus)
}

func (h *statsHandler) dailyStats(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = domain.DayKey(time.Now())
	} else if _, err := time.Parse(domain.DayKeyFormat, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, h.stats.ComputeDailyStats(c.Request.Context(), date))
}

func (h *statsHandler) syncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SyncStatusResponse{
		InitialLoadInProgress: h.sync.InitialLoadInProgress(),
		PendingMutations:      h.sync.PendingCount(),
		FailedMutations:       h.sync.FailedCount(),
	})
}
