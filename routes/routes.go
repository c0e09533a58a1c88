package routes

import (
	"net/http"
	"time"

	"medagenda/handlers"
	"medagenda/middleware"
	"medagenda/models"
	"medagenda/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the calendar read endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:practitionerId", hb.GetAvailabilityHandler)
		api.GET("", hb.GetDailyAgendaHandler)
	}
}

// RegisterAppointmentRoutes registers booking and lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.POST("/:id/arrive", middleware.RequireRole(models.RoleFrontDesk, models.RoleAdmin), hb.ArriveAppointmentHandler)
		api.POST("/:id/complete", middleware.RequireRole(models.RolePractitioner, models.RoleAdmin), hb.CompleteAppointmentHandler)
		api.POST("/:id/cancel", hb.CancelAppointmentHandler)
		api.POST("/:id/reschedule", hb.RescheduleAppointmentHandler)
		api.GET("/patient/:patientId", hb.ListPatientAppointments)
		api.GET("/practitioner/:practitionerId", hb.ListPractitionerAppointments)
	}
}

// RegisterScheduleRoutes registers blocked-interval management.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/blocked/:practitionerId", hb.GetBlockedIntervalsHandler)

		staff := api.Group("")
		staff.Use(middleware.RequireRole(models.RolePractitioner, models.RoleFrontDesk, models.RoleAdmin))
		staff.PUT("/blocked", hb.SetBlockedIntervalsHandler)
		staff.POST("/close", hb.CloseDayHandler)
	}
}

// RegisterDirectoryRoutes registers practitioner and patient management.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	practitioners := r.Group("/api/practitioners")
	{
		practitioners.Use(middleware.JWTAuthMiddleware())
		practitioners.GET("", hb.ListPractitionersHandler)
		practitioners.GET("/:id", hb.GetPractitionerHandler)
		practitioners.POST("", middleware.RequireRole(models.RoleAdmin), hb.CreatePractitionerHandler)
	}

	patients := r.Group("/api/patients")
	{
		patients.Use(middleware.JWTAuthMiddleware())
		patients.GET("/:id", hb.GetPatientHandler)
		patients.POST("", middleware.RequireRole(models.RoleFrontDesk, models.RoleAdmin), hb.CreatePatientHandler)
	}
}

// RegisterAdminRoutes registers the state override endpoint.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		adminGroup.POST("/appointments/:id/override", hb.OverrideAppointmentHandler)
		adminGroup.GET("/appointments/:id/audit", hb.ListOverrideAuditHandler)
	}
}

// RegisterRealtimeRoutes registers the websocket event stream.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/realtime")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/ws", hb.RealtimeWSHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
}
