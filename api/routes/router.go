package routes

import (
	"net/http"
	"time"

	"roomly/internal/auth"
	"roomly/internal/availability"
	"roomly/internal/reservations"
	"roomly/internal/roomtypes"
	"roomly/internal/shared/config"
	"roomly/internal/shared/database"
	"roomly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier reservations.Notifier

	// Services shared across route groups
	roomTypeService    roomtypes.Service
	reservationRepo    reservations.Repository
	reservationService reservations.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetNotifier injects the notification publisher used for reservation
// lifecycle events. Call before SetupRoutes.
func (r *Router) SetNotifier(notifier reservations.Notifier) {
	r.notifier = notifier
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Room types feed the policy resolver used by every other group,
		// so they wire up first
		r.setupRoomTypeRoutes(api)

		r.setupReservationRoutes(api)

		r.setupAvailabilityRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "roomly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "roomly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupRoomTypeRoutes configures room type configuration routes
func (r *Router) setupRoomTypeRoutes(rg *gin.RouterGroup) {
	roomTypeRepo := roomtypes.NewRepository(r.db.GetPostgreSQL())
	roomTypeService := roomtypes.NewService(roomTypeRepo, roomtypes.DefaultPolicies())

	// Policies change rarely and are read on every availability probe, so
	// they sit behind the Redis cache
	roomTypeService.SetCacheService(cache.NewService(r.db.GetRedisClient()))

	r.roomTypeService = roomTypeService

	roomTypeController := roomtypes.NewController(roomTypeService)
	roomtypes.SetupRoomTypeRoutes(rg, roomTypeController)
}

// setupReservationRoutes configures reservation management routes
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	reservationService := reservations.NewService(reservationRepo, r.roomTypeService)

	if r.notifier != nil {
		reservationService.SetNotifier(r.notifier)
	}

	r.reservationRepo = reservationRepo
	r.reservationService = reservationService

	reservationController := reservations.NewController(reservationService)
	reservations.SetupReservationRoutes(rg, reservationController)
}

// setupAvailabilityRoutes configures the public availability probe routes
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	availabilityService := availability.NewService(r.reservationRepo, r.roomTypeService)
	availabilityController := availability.NewController(availabilityService)

	availability.SetupAvailabilityRoutes(rg, availabilityController)
}
