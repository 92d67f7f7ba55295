package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/config"
	"github.com/roman-z-solik/table-booking/controllers"
	"github.com/roman-z-solik/table-booking/middlewares"
	"github.com/roman-z-solik/table-booking/services"
)

func SetupRouter(db *gorm.DB, rest config.Restaurant, mailer *services.Mailer, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	controllers.RegisterValidators()

	// Engine middleware must be registered before any route: gin snapshots
	// the handler chain per route at registration time.
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	bookingService := services.NewBookingService(db, rest, mailer)

	userCtrl := controllers.NewUserController(db, mailer)
	tableCtrl := controllers.NewTableController(db, bookingService, rest)
	bookingCtrl := controllers.NewBookingController(db, bookingService)
	feedbackCtrl := controllers.NewFeedbackController(db)
	pageCtrl := controllers.NewPageController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/restaurant", controllers.RestaurantInfo(rest))
	r.GET("/pages/:page_type", pageCtrl.GetPage)
	r.POST("/feedback", feedbackCtrl.CreateFeedback)

	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id/capacity", tableCtrl.GetTableCapacity)
	r.GET("/tables/:table_id/busy", tableCtrl.GetBusyTimes)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/bookings", bookingCtrl.CreateBooking)
		auth.GET("/bookings", bookingCtrl.ListBookings)
		auth.GET("/bookings/:booking_id", bookingCtrl.GetBooking)
		auth.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		auth.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/tables", tableCtrl.GetAllTablesAdmin)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)

		admin.PATCH("/pages/:page_type", pageCtrl.UpdatePage)
		admin.GET("/feedback", feedbackCtrl.ListFeedback)

		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/export", adminCtrl.ExportData)
		admin.POST("/import", adminCtrl.ImportData)
	}

	return r
}
