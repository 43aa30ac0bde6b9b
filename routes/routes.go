package routes

import (
	"net/http"
	"time"

	"urbanserve/handlers"
	"urbanserve/middleware"
	"urbanserve/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.MeHandler)
	}
}

// RegisterCatalogRoutes registers the public vocabulary endpoint.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/constants/service-types", hb.ServiceTypesHandler)
}

// RegisterProviderRoutes registers profile onboarding and the public
// provider directory.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("/search", hb.SearchProvidersHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("/worker-profile", middleware.RequireRole(models.RoleWorker), hb.CreateWorkerProfileHandler)
		protected.GET("/worker-profile", middleware.RequireRole(models.RoleWorker), hb.GetWorkerProfileHandler)
		protected.POST("/tutor-profile", middleware.RequireRole(models.RoleTutor), hb.CreateTutorProfileHandler)
		protected.GET("/tutor-profile", middleware.RequireRole(models.RoleTutor), hb.GetTutorProfileHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleCustomer), hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.PATCH("/:id/status", hb.UpdateBookingStatusHandler)
	}
}

// RegisterRatingRoutes registers the rating endpoint.
func RegisterRatingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleCustomer), hb.CreateRatingHandler)
	}
}

// RegisterChatRoutes registers the conversational recommender endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.ChatHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterHealthRoute(r)
}
