package reservations

import (
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(router *gin.RouterGroup, controller Controller) {
	// Admin routes - bookings are confirmed from the back office after the
	// payment redirect completes
	adminReservations := router.Group("/admin/reservations")
	adminReservations.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminReservations.POST("", controller.CreateReservation)       // POST /api/v1/admin/reservations - Confirm booking
		adminReservations.GET("", controller.ListReservations)         // GET /api/v1/admin/reservations - List bookings
		adminReservations.GET("/:id", controller.GetReservation)       // GET /api/v1/admin/reservations/:id
		adminReservations.DELETE("/:id", controller.CancelReservation) // DELETE /api/v1/admin/reservations/:id - Cancel
	}
}
