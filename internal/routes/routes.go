package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/flowershop-golang/internal/handlers"
	"github.com/01moynul/flowershop-golang/internal/middleware"
)

// SetupRouter wires every endpoint. handlers.ConfigureBinding must have run
// before the first request is served.
func SetupRouter(h *handlers.Handlers, jwtSecret []byte, corsOrigin string) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	router.Use(middleware.CORSMiddleware(corsOrigin))
	router.Use(middleware.RequestID())

	// --- Ping Route (Public) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	api := router.Group("/api")
	requireAuth := middleware.AuthMiddleware(jwtSecret)

	// --- User Routes ---
	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", h.Register)
		userRoutes.POST("/login", h.Login)
		userRoutes.GET("/profile", requireAuth, h.Profile)
		userRoutes.POST("/invite", requireAuth, h.Invite)
	}

	// --- Order Routes (Login Required) ---
	orderRoutes := api.Group("/orders")
	orderRoutes.Use(requireAuth)
	{
		orderRoutes.POST("", h.CreateOrder)
		orderRoutes.GET("", h.GetOrders)
		orderRoutes.GET("/:id", h.GetOrder)
		orderRoutes.PUT("/:id", h.UpdateOrder)
	}

	return router
}
