package availability

import "github.com/gin-gonic/gin"

func SetupAvailabilityRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - the booking form queries these before checkout
	public := router.Group("/availability")
	{
		public.GET("", controller.GetAvailability) // GET /api/v1/availability?category=&start=
		public.GET("/block", controller.GetBlock)  // GET /api/v1/availability/block?category=&at=
	}
}
