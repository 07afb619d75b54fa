package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/handlers"
	"github.com/freshtrack/freshtrack-golang/internal/middleware"
)

// CORSMiddleware lets the browser frontend talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouter wires every endpoint. Public: ping, register, login.
// Everything else requires a valid token; the admin group additionally
// requires the admin role.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Tokens))
		{
			// Inventory ledger
			auth.GET("/inventory", h.ListItems)
			auth.POST("/inventory", h.CreateItem)
			auth.GET("/inventory/:id", h.GetItem)
			auth.PUT("/inventory/:id", h.UpdateItem)
			auth.DELETE("/inventory/:id", h.DeleteItem)

			// Depletion recording
			auth.GET("/consumption", h.ListConsumption)
			auth.POST("/consumption", h.LogConsumption)
			auth.GET("/waste", h.ListWaste)
			auth.POST("/waste", h.LogWaste)

			// Read models
			auth.GET("/dashboard/summary", h.GetDashboardSummary)
			auth.GET("/reports/waste-breakdown", h.GetWasteBreakdown)
			auth.GET("/forecast/:itemId", h.GetForecast)

			// Sharing
			auth.GET("/sharing/available", h.ListAvailable)
			auth.GET("/sharing/requests", h.ListRequests)
			auth.POST("/sharing/requests", h.RequestItem)

			// Admin views
			admin := auth.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/summary", h.GetAdminSummary)
			}
		}
	}

	return router
}
