package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/controllers"
	"github.com/bright100/CanteenApi/middlewares"
	"github.com/bright100/CanteenApi/services"
)

func SetupRouter(
	db *gorm.DB,
	orderSvc *services.OrderService,
	vendorSvc *services.VendorService,
	invSvc *services.InventoryService,
) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderCtrl := controllers.NewOrderController(db, orderSvc)
	vendorCtrl := controllers.NewVendorController(db, vendorSvc)
	invCtrl := controllers.NewInventoryController(db, invSvc)
	feedCtrl := controllers.NewFeedController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Order lifecycle
	orders := r.Group("/orders")
	{
		orders.POST("", middlewares.NewStrictRateLimiter(), orderCtrl.PlaceOrder)
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/:order_id", orderCtrl.GetOrderByID)
		orders.PATCH("/:order_id/complete", orderCtrl.CompleteOrder)
		orders.PATCH("/:order_id/cancel", orderCtrl.CancelOrder)
	}

	// Vendor operations
	vendors := r.Group("/vendors")
	{
		vendors.PATCH("/close-all", vendorCtrl.CloseAllCanteens)
		vendors.PATCH("/:vendor_name/open", vendorCtrl.OpenCanteen)
		vendors.PATCH("/:vendor_name/close", vendorCtrl.CloseCanteen)
		vendors.GET("/:vendor_name/status", vendorCtrl.GetVendorStatus)
		vendors.GET("/:vendor_name/orders", orderCtrl.GetVendorOrders)
		vendors.GET("/:vendor_name/orders/recent/:employee_email", orderCtrl.GetRecentOrder)

		// Inventory milik vendor
		vendors.GET("/:vendor_name/items", invCtrl.GetVendorItems)
		vendors.PATCH("/:vendor_name/items/:item_name/restock", invCtrl.RestockItem)
		vendors.PATCH("/:vendor_name/items/:item_name/status", invCtrl.MarkItemStatus)
		vendors.PATCH("/:vendor_name/items/:item_name/attach", invCtrl.AttachItem)
	}

	// Live feed untuk vendor
	r.GET("/ws/orders/:vendor_name", feedCtrl.OrderFeed)

	return r
}
