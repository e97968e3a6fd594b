package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/config"
	"github.com/bright100/CanteenApi/middlewares"
	"github.com/bright100/CanteenApi/models"
	"github.com/bright100/CanteenApi/router"
	"github.com/bright100/CanteenApi/services"
	"github.com/bright100/CanteenApi/utils"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Scheduler untuk expiry order (2 jam) dan auto-close kantin (7 hari)
	scheduler := services.NewJobScheduler(db)

	orderSvc := services.NewOrderService(db, scheduler)
	vendorSvc := services.NewVendorService(db, scheduler)
	invSvc := services.NewInventoryService(db)

	scheduler.RegisterHandler(services.ActionCancelOrder, orderSvc.HandleExpiredOrder)
	scheduler.RegisterHandler(services.ActionCloseCanteen, vendorSvc.HandleCanteenClose)
	scheduler.Start()
	defer scheduler.Stop()

	// Rate limiter global (50 requests per detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, orderSvc, vendorSvc, invSvc)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Vendor{},
		&models.Employee{},
		&models.Inventory{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderFoodItem{},
		&models.ScheduledJob{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
