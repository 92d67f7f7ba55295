package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/config"
	"github.com/roman-z-solik/table-booking/database"
	"github.com/roman-z-solik/table-booking/middlewares"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/router"
	"github.com/roman-z-solik/table-booking/services"
	"github.com/roman-z-solik/table-booking/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	rest := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.SeedDefaults(db); err != nil {
		utils.ErrorLogger.Printf("Seeding defaults failed: %v", err)
	}

	mailer := services.NewMailer(rest)

	reminders := services.StartReminderScheduler(db, mailer)
	defer reminders.Stop()

	r := router.SetupRouter(db, rest, mailer, middlewares.NewRateLimiter(50, 1))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("%s booking service listening on port %s", rest.Name, port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Booking{},
		&models.Feedback{},
		&models.Page{},
		&models.GalleryImage{},
		&models.MenuItem{},
		&models.TeamMember{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
