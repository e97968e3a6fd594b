package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/hub"
	"github.com/bright100/CanteenApi/models"
	"github.com/bright100/CanteenApi/services"
	"github.com/bright100/CanteenApi/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedController struct {
	DB *gorm.DB
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

// OrderFeed handles GET /ws/orders/:vendor_name
// Upgrade ke websocket, lalu vendor menerima push order_created /
// order_update untuk order miliknya.
func (fc *FeedController) OrderFeed(c *gin.Context) {
	vendorName := c.Param("vendor_name")

	var vendor models.Vendor
	if err := fc.DB.Where("vendor_name = ?", vendorName).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, services.ErrVendorNotFound)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to upgrade connection for %s: %v", vendorName, err)
		return
	}

	hub.RegisterClient(conn, vendorName)
	utils.InfoLogger.Printf("Vendor %s connected to order feed", vendorName)

	go func() {
		defer hub.UnregisterClient(conn)
		for {
			// baca hanya untuk mendeteksi close dari sisi client
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.InfoLogger.Printf("Vendor %s disconnected from order feed", vendorName)
				return
			}
		}
	}()
}
