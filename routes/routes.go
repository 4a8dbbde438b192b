package routes

import (
	"net/http"
	"time"

	"innkeep/handlers"
	"innkeep/middleware"
	"innkeep/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries the settings the router needs from configuration.
type Options struct {
	MaxRequestsPerMin int
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.CheckedAt.IsZero() && !status.Store {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Innkeep"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoomRoutes registers room inventory, availability and check-in endpoints.
func RegisterRoomRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	rooms := api.Group("/rooms")
	{
		rooms.GET("", hb.ListRooms)
		rooms.POST("", hb.CreateRoom)
		rooms.GET("/available", hb.AvailableRooms)
		rooms.PATCH("/:id/status", hb.UpdateRoomStatus)
		rooms.POST("/:id/checkin", hb.RoomCheckIn)
	}

	stays := api.Group("/stays")
	{
		stays.GET("", hb.ListStays)
		stays.GET("/:id/payments", hb.StayPayments)
		stays.POST("/:id/payments", hb.StayPayment)
		stays.POST("/:id/checkout", hb.StayCheckOut)
	}
}

// RegisterBookingRoutes registers the advance booking endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/advance-bookings")
	{
		bookings.GET("", hb.ListBookings)
		bookings.POST("", hb.CreateBooking)
		bookings.GET("/:id", hb.GetBooking)
		bookings.POST("/:id/cancel", hb.CancelBooking)
		bookings.POST("/:id/complete", hb.CompleteBooking)
	}
}

// RegisterHouseRoutes registers the house board and house booking endpoints.
func RegisterHouseRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/houses", hb.HouseBoard)
	api.POST("/houses/:id/checkin", hb.HouseCheckIn)

	bookings := api.Group("/house-bookings")
	{
		bookings.POST("/:id/extend", hb.HouseExtend)
		bookings.POST("/:id/fees", hb.HouseExtraFee)
		bookings.POST("/:id/payments", hb.HousePayment)
		bookings.POST("/:id/checkout", hb.HouseCheckOut)
	}
}

// RegisterPaymentRoutes registers the ledger and dashboard endpoints.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	payments := api.Group("/payments")
	{
		payments.GET("", hb.ListPayments)
		payments.GET("/export", hb.ExportPayments)
		payments.POST("/reconcile", hb.Reconcile)
	}
	api.GET("/dashboard", hb.Dashboard)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))
	api.Use(middleware.JWTAuthAdminMiddleware())

	RegisterRoomRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterHouseRoutes(api, hb)
	RegisterPaymentRoutes(api, hb)
}
