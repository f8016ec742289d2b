package routes

import (
	"net/http"
	"time"

	"voyago/handlers"
	"voyago/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational pipeline endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Chat.HandleChatTurn)
		api.POST("/attachment", hb.Attachments.UploadAttachment)
		api.GET("/session/:id", hb.Chat.GetSession)
		api.DELETE("/session/:id", hb.Chat.ClearSession)
	}
}

// RegisterProfileRoutes registers preference default endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Profile.GetProfile)
		api.PUT("", hb.Profile.UpdateProfile)
	}
}

// RegisterTripRoutes registers saved trip and itinerary endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/trips")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Trips.ListTrips)
		api.POST("/itinerary", hb.Trips.SaveItinerary)
	}
}

// RegisterAlertRoutes registers the disruption monitor's alert feed.
func RegisterAlertRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/alerts")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", hb.Alerts.GetPendingAlerts)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Voyago"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterTripRoutes(r, hb)
	RegisterAlertRoutes(r, hb)
	RegisterHealthRoute(r)
}
