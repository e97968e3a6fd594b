package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/services"
	"github.com/bright100/CanteenApi/utils"
)

// RestockRequest -> payload PATCH restock
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ItemStatusRequest -> payload PATCH status
type ItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type InventoryController struct {
	DB  *gorm.DB
	Svc *services.InventoryService
}

func NewInventoryController(db *gorm.DB, svc *services.InventoryService) *InventoryController {
	return &InventoryController{DB: db, Svc: svc}
}

// RestockItem handles PATCH /vendors/:vendor_name/items/:item_name/restock
func (ic *InventoryController) RestockItem(c *gin.Context) {
	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	vendorName := c.Param("vendor_name")
	itemName := c.Param("item_name")
	if err := ic.Svc.AddToFoodItem(itemName, vendorName, req.Quantity); err != nil {
		utils.ErrorLogger.Printf("Failed to restock %s for %s: %v", itemName, vendorName, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item restocked", nil)
}

// MarkItemStatus handles PATCH /vendors/:vendor_name/items/:item_name/status
func (ic *InventoryController) MarkItemStatus(c *gin.Context) {
	var req ItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	vendorName := c.Param("vendor_name")
	itemName := c.Param("item_name")
	if err := ic.Svc.MarkFoodItemStatus(itemName, vendorName, req.Status); err != nil {
		utils.ErrorLogger.Printf("Failed to update status of %s for %s: %v", itemName, vendorName, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item status updated", nil)
}

// AttachItem handles PATCH /vendors/:vendor_name/items/:item_name/attach
func (ic *InventoryController) AttachItem(c *gin.Context) {
	vendorName := c.Param("vendor_name")
	itemName := c.Param("item_name")

	if err := ic.Svc.AddItemToInventory(vendorName, itemName); err != nil {
		utils.ErrorLogger.Printf("Failed to attach %s to %s: %v", itemName, vendorName, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item attached to inventory", nil)
}

// GetVendorItems handles GET /vendors/:vendor_name/items
func (ic *InventoryController) GetVendorItems(c *gin.Context) {
	page, pageSize := paginationParams(c)

	items, err := ic.Svc.GetAllItems(c.Param("vendor_name"), page, pageSize)
	if err != nil {
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Items retrieved successfully", items)
}
