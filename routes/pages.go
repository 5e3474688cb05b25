package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/config"
	accountControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/account"
	cartControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/cart"
	medicineControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/medicine"
	orderControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/order"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/middleware"
)

// SetupPageRoutes registers the HTML surface.
func SetupPageRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// ─────────── Public: signup & login ───────────
	r.GET("/signup", accountControllers.ShowSignup())
	r.POST("/signup", accountControllers.HandleSignup(db))
	r.GET("/login", accountControllers.ShowLogin())
	r.POST("/login", accountControllers.HandleLogin(db, cfg))

	// ─────────── Session-guarded pages ───────────
	guarded := r.Group("/")
	guarded.Use(middleware.RequireUser(cfg.SessionSecret))
	{
		guarded.GET("/", medicineControllers.Home(db))
		guarded.GET("/logout", accountControllers.HandleLogout())
		guarded.GET("/add_to_cart/:id", cartControllers.AddToCartPage(db))
		guarded.GET("/cart", cartControllers.ViewCartPage(db))
		guarded.GET("/place_order", orderControllers.PlaceOrderPage(db))
		guarded.GET("/my_orders", orderControllers.MyOrdersPage(db))
	}
}
