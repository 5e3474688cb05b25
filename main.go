package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/cache"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/config"
	medicineControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/medicine"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/routes"
)

func main() {
	log.Println("✅ Starting HealthyMe Pharmacy...")

	cfg := config.Load()

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Medicine{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if err := medicineControllers.SeedMedicines(db); err != nil {
		log.Fatalf("❌ Catalog seeding failed: %v", err)
	}

	var mc *cache.MedicineCache
	if cfg.RedisAddr != "" {
		mc = cache.NewMedicineCache(cfg.RedisAddr, cfg.RedisPassword)
		log.Printf("✅ Catalog cache enabled (redis at %s)", cfg.RedisAddr)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.LoadHTMLGlob("templates/*.html")

	routes.SetupRoutes(r, db, cfg, mc)

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase opens Postgres when a DSN is configured and falls back to the
// sqlite file the original deployment used.
func initDatabase(cfg config.Config) *gorm.DB {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to open sqlite database: %v", err)
	}
	return db
}
