package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joshua-takyi/booking-service/docs"
	"github.com/joshua-takyi/booking-service/internal/container"
	"github.com/joshua-takyi/booking-service/internal/handlers"
	"github.com/joshua-takyi/booking-service/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	if len(container.Config.AllowedOrigins) > 0 {
		// The frontend sends the session cookie cross-origin.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     container.Config.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
		}))
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "booking-service",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	protected := r.Group("/bookings")
	protected.Use(middleware.TokenIdentity(container.TokenVerifier, container.Config.TokenCookie, container.Logger))
	{
		protected.POST("", handlers.CreateBooking(container.BookingService))
		protected.GET("", handlers.ListBookings(container.BookingService))
	}

	return r
}
