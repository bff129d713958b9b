package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/nkozi444/CampusGo/internal/database"
	"github.com/nkozi444/CampusGo/internal/handlers"
	"github.com/nkozi444/CampusGo/internal/middleware"
	"github.com/nkozi444/CampusGo/internal/services"
	"github.com/nkozi444/CampusGo/internal/session"
	"github.com/nkozi444/CampusGo/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using environment")
	}

	// Initialize database with better error handling
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis (session cache + pub/sub)
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Stores own every write path; the hub learns about each commit.
	bookings := store.NewBookingStore(db, hub)
	fleet := store.NewFleetStore(db, hub)
	resolver := session.NewResolver(session.NewRedisRoleCache(), session.NewUserLookup(db))

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db, resolver))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/session", handlers.GetSession(resolver))
			protected.POST("/auth/logout", handlers.Logout())

			// User routes
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.GET("", handlers.ListUsers(db))
			}

			// Bookings routes
			bookingRoutes := protected.Group("/bookings")
			{
				bookingRoutes.POST("", handlers.CreateBooking(bookings))
				bookingRoutes.GET("", handlers.GetBookings(bookings))
				bookingRoutes.GET("/:id", handlers.GetBookingStatus(bookings))
				bookingRoutes.PATCH("/:id/status", handlers.UpdateBookingStatus(bookings, fleet))
			}

			// Fleet routes
			vehicles := protected.Group("/vehicles")
			{
				vehicles.GET("", handlers.GetVehicles(fleet))
				vehicles.GET("/options", handlers.GetVehicleOptions())
				vehicles.POST("", handlers.CreateVehicle(fleet))
				vehicles.PATCH("/:id/status", handlers.UpdateVehicleStatus(bookings, fleet))
			}

			drivers := protected.Group("/drivers")
			{
				drivers.GET("", handlers.GetDrivers(fleet))
				drivers.POST("", handlers.CreateDriver(fleet))
				drivers.PATCH("/:id/status", handlers.UpdateDriverStatus(bookings, fleet))
			}

			// Dashboard routes
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/kpis", handlers.GetKPIs(bookings, fleet))
				dashboard.GET("/calendar", handlers.GetCalendar(bookings))
				dashboard.GET("/calendar/:date", handlers.GetCalendarDay(bookings))
				dashboard.GET("/timeline", handlers.GetTimeline(bookings))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
