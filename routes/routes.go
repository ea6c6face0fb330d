package routes

import (
	"time"

	"clubhouse/handlers"
	"clubhouse/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMemberRoutes registers registration, login and profile endpoints.
func RegisterMemberRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/members")
	{
		api.POST("/register", hb.Members.RegisterHandler)
		api.POST("/login", hb.Members.LoginHandler)

		// Protected routes (Require Authentication)
		api.GET("/me", middleware.JWTAuthMemberMiddleware(hb.Tokens), hb.Members.MeHandler)
	}
}

// RegisterBookingRoutes sets up the court booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMemberMiddleware(hb.Tokens))
		bookingGroup.GET("/slots", hb.Bookings.GetSlotsHandler)
		bookingGroup.GET("/suggest", hb.Bookings.SuggestStartHandler)
		bookingGroup.POST("", hb.Bookings.CreateBookingHandler)
		bookingGroup.GET("/mine", hb.Bookings.MyBookingsHandler)
		bookingGroup.GET("/upcoming", hb.Bookings.UpcomingHandler)
	}
}

// RegisterAdminRoutes registers the admin endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.JWTAuthMemberMiddleware(hb.Tokens), middleware.RequireAdmin())
		admin.GET("/bookings", hb.Admin.ListBookingsHandler)
		admin.GET("/members", hb.Admin.SearchMembersHandler)
		admin.GET("/statements", hb.Admin.ListStatementsHandler)
		admin.POST("/statements/generate", hb.Admin.GenerateStatementsHandler)
		admin.POST("/statements/:id/paid", hb.Admin.MarkStatementPaidHandler)
	}
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes registers all routes and applies global CORS.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterMemberRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterOpsRoutes(r, hb)
}
