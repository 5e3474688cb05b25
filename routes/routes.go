package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/cache"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/config"
)

// SetupRoutes is the single entry-point that wires up the page and API route
// groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, mc *cache.MedicineCache) {
	// Server-rendered pages (session cookie, redirects on failure)
	SetupPageRoutes(r, db, cfg)

	// JSON API (explicit 4xx statuses)
	SetupAPIRoutes(r, db, cfg, mc)
}
