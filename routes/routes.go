package routes

import (
	"net/http"
	"time"

	"flowmaster/handlers"
	"flowmaster/middleware"
	"flowmaster/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "FlowMaster", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
}

// RegisterAuthRoutes registers registration, login and service token endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", hb.RegisterHandler)
		auth.POST("/login", hb.LoginHandler)
		auth.POST("/service-token", hb.ServiceTokenHandler)
	}
}

// RegisterPublicRoutes registers the unauthenticated storefront endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/config/payment", hb.PublicPaymentConfigHandler)

	public := r.Group("/api/public")
	{
		public.GET("/services", hb.ListPublicServicesHandler)
		public.GET("/availability", hb.PublicAvailabilityHandler)
		public.GET("/agent-config", hb.PublicAgentConfigHandler)
	}

	wa := r.Group("/webhooks/whatsapp")
	{
		wa.GET("/inbound", hb.WhatsAppVerifyHandler)
		wa.POST("/inbound", hb.WhatsAppInboundHandler)
	}
}

// RegisterCatalogRoutes registers services, professionals and schedules.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	services := api.Group("/services")
	{
		services.POST("", hb.CreateServiceHandler)
		services.GET("", hb.ListServicesHandler)
		services.GET("/:id", hb.GetServiceHandler)
		services.PUT("/:id", hb.UpdateServiceHandler)
		services.DELETE("/:id", hb.DeleteServiceHandler)
	}

	pros := api.Group("/professionals")
	{
		pros.POST("", hb.CreateProfessionalHandler)
		pros.GET("", hb.ListProfessionalsHandler)
		pros.GET("/:id", hb.GetProfessionalHandler)
		pros.PUT("/:id", hb.UpdateProfessionalHandler)
		pros.DELETE("/:id", hb.DeleteProfessionalHandler)
		pros.GET("/:id/schedules", hb.GetScheduleHandler)
		pros.PUT("/:id/schedules", hb.SetScheduleHandler)
	}
}

// RegisterAccountRoutes registers tenant config, profile, reviews, finance and notifications.
func RegisterAccountRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	cfg := api.Group("/config")
	{
		cfg.GET("", hb.GetConfigHandler)
		cfg.PUT("", hb.UpdateConfigHandler)
		cfg.PUT("/agent", hb.UpdateAgentConfigHandler)
	}

	api.GET("/users/profile", hb.ProfileHandler)
	api.PUT("/users/fcm-token", hb.SetFCMTokenHandler)
	api.POST("/reviews", hb.CreateReviewHandler)

	fin := api.Group("/finance", middleware.RequireRole(models.RoleAdmin))
	{
		fin.GET("/summary", hb.FinanceSummaryHandler)
		fin.GET("/report", hb.FinanceReportHandler)
	}

	notif := api.Group("/notifications")
	{
		notif.GET("", hb.ListNotificationsHandler)
		notif.POST("/run-job", middleware.RequireRole(models.RoleAdmin), hb.RunReminderJobHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if maxRequestsPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))
	}

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterPublicRoutes(r, hb)

	api := r.Group("/api", middleware.JWTAuthMiddleware())
	RegisterBookingRoutes(api, hb)
	RegisterCatalogRoutes(api, hb)
	RegisterAccountRoutes(api, hb)
}
