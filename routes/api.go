package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/cache"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/config"
	cartControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/cart"
	medicineControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/medicine"
	orderControllers "github.com/KaushikiPachauri/HealthyMe-Pharmacy/controllers/order"
	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/middleware"
)

// SetupAPIRoutes registers the JSON surface under /api.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, mc *cache.MedicineCache) {
	api := r.Group("/api")
	{
		// ─────────── Catalog ───────────
		api.GET("/medicines", medicineControllers.ListMedicinesHandler(db, mc))
		api.POST("/medicines/:id/like", medicineControllers.ToggleLikedHandler(db, mc))
		api.GET("/medicines/export-excel", medicineControllers.ExportMedicinesToExcel(db))

		// ─────────── Stock checkout (no order record) ───────────
		api.POST("/cart/checkout", cartControllers.CheckoutHandler(db, mc))

		// ─────────── Order feed ───────────
		api.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

		// ─────────── Session-guarded cart & orders ───────────
		authed := api.Group("/")
		authed.Use(middleware.RequireUserAPI(cfg.SessionSecret))
		{
			authed.POST("/cart", cartControllers.AddToCartAPI(db))
			authed.GET("/cart", cartControllers.GetCartAPI(db))
			authed.GET("/orders", orderControllers.ListOrdersAPI(db))
		}
	}
}
