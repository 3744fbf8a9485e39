package roomtypes

import (
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoomTypeRoutes(router *gin.RouterGroup, controller Controller) {
	// Admin routes - scheduling policy is back-office configuration
	adminConfigs := router.Group("/admin/room-types")
	adminConfigs.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminConfigs.GET("", controller.GetConfigs)                  // GET /api/v1/admin/room-types - List configs
		adminConfigs.PUT("", controller.UpsertConfig)                // PUT /api/v1/admin/room-types - Upsert config
		adminConfigs.DELETE("/:category", controller.DeleteConfig)   // DELETE /api/v1/admin/room-types/:category
	}
}
