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

type projectHandler struct {
	entities *store.EntityStore
	ledger   portssvc.LedgerSvcFacade
}

func newProjectHandler(entities *store.EntityStore, ledger portssvc.LedgerSvcFacade) *projectHandler {
	return &projectHandler{entities: entities, ledger: ledger}
}

func registerProjectRoutes(rg *gin.RouterGroup, h *projectHandler) {
	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.POST("", h.createProject)
		projects.PATCH("/:projectID/status", h.updateStatus)
	}
}

func (h *projectHandler) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.entities.ListProjects())
}

func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.CreateProject(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.NewMutationResponse(receipt))
}

func (h *projectHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.ledger.UpdateProjectStatus(c.Request.Context(), c.Param("projectID"), domain.ProjectStatus(req.Status))
	if err != nil {
		respondError(c, err, "Failed to update project status")
		return
	}
	c.JSON(http.StatusOK, dto.NewMutationResponse(receipt))
}
