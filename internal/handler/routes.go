package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/trainer-planning-api/internal/middleware"
	"github.com/noah-isme/trainer-planning-api/internal/models"
)

// Handlers groups the API handlers mounted under the API prefix.
type Handlers struct {
	Trainers     *TrainerHandler
	Availability *AvailabilityHandler
	Planning     *PlanningHandler
	// WriteLimit throttles planner writes. Nil disables throttling.
	WriteLimit *middleware.RateLimiter
}

// RegisterRoutes mounts the planning API on group. Authentication must already
// be installed on group; roles are enforced per route.
func RegisterRoutes(group *gin.RouterGroup, h Handlers) {
	readers := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleTrainer)
	planners := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	throttle := h.WriteLimit.Middleware()

	group.Use(middleware.WithResponseMeta())

	if h.Trainers != nil {
		group.GET("/trainers", readers, h.Trainers.List)
	}

	if h.Availability != nil {
		availability := group.Group("/availability")
		availability.GET("", readers, h.Availability.List)
		availability.POST("", planners, throttle, h.Availability.Create)
		availability.POST("/bulk", planners, throttle, h.Availability.BulkCreate)
		availability.PUT("/:id", planners, throttle, h.Availability.Update)
		availability.DELETE("/:id", planners, throttle, h.Availability.Delete)
	}

	if h.Planning != nil {
		planning := group.Group("/planning")
		planning.GET("/matrix", readers, h.Planning.Matrix)
		planning.GET("/weekly", readers, h.Planning.Weekly)
		planning.GET("/export", planners, h.Planning.Export)
		planning.POST("/gestures", planners, throttle, h.Planning.Gesture)
	}
}
