package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/sitebook/backend/internal/core/ports/services"
	"github.com/sitebook/backend/internal/middleware"
	"github.com/sitebook/backend/internal/platform/config"
	"github.com/sitebook/backend/internal/store"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	entities *store.EntityStore,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Notices survive a session wipe and are readable without a session.
	registerPublicRoutes(r, entities)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, entities, services)
}

func registerPublicRoutes(r *gin.Engine, entities *store.EntityStore) {
	public := r.Group("/public")
	public.GET("/notices", func(c *gin.Context) {
		c.JSON(200, entities.ListNotices())
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	entities *store.EntityStore,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerWorkerRoutes(v1, newWorkerHandler(entities, services.Ledger, services.Balance))
	registerProjectRoutes(v1, newProjectHandler(entities, services.Ledger))
	registerAttendanceRoutes(v1, newAttendanceHandler(entities, services.Ledger))
	registerTransactionRoutes(v1, newTransactionHandler(entities, services.Ledger))
	registerMaterialRoutes(v1, newMaterialHandler(entities, services.Ledger))
	registerWorkReportRoutes(v1, newWorkReportHandler(entities, services.Ledger))
	registerNoticeRoutes(v1, newNoticeHandler(entities, services.Ledger))
	registerStatsRoutes(v1, newStatsHandler(services.Stats, services.Sync))
}
