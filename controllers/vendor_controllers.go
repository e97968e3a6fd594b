package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/services"
	"github.com/bright100/CanteenApi/utils"
)

type VendorController struct {
	DB  *gorm.DB
	Svc *services.VendorService
}

func NewVendorController(db *gorm.DB, svc *services.VendorService) *VendorController {
	return &VendorController{DB: db, Svc: svc}
}

// OpenCanteen handles PATCH /vendors/:vendor_name/open
func (vc *VendorController) OpenCanteen(c *gin.Context) {
	vendorName := c.Param("vendor_name")

	if err := vc.Svc.OpenCanteen(vendorName); err != nil {
		utils.ErrorLogger.Printf("Failed to open canteen for %s: %v", vendorName, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.InfoLogger.Printf("Canteen opened for vendor %s", vendorName)
	utils.RespondJSON(c, http.StatusOK, "Canteen opened", nil)
}

// CloseCanteen handles PATCH /vendors/:vendor_name/close
func (vc *VendorController) CloseCanteen(c *gin.Context) {
	vendorName := c.Param("vendor_name")

	if err := vc.Svc.CloseCanteen(vendorName); err != nil {
		utils.ErrorLogger.Printf("Failed to close canteen for %s: %v", vendorName, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Canteen closed", nil)
}

// CloseAllCanteens handles PATCH /vendors/close-all
func (vc *VendorController) CloseAllCanteens(c *gin.Context) {
	if err := vc.Svc.MarkAllVendorsAsClosed(); err != nil {
		utils.ErrorLogger.Printf("Failed to close all canteens: %v", err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All canteens closed", nil)
}

// GetVendorStatus handles GET /vendors/:vendor_name/status
func (vc *VendorController) GetVendorStatus(c *gin.Context) {
	info, err := vc.Svc.GetVendorStatus(c.Param("vendor_name"))
	if err != nil {
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vendor status retrieved successfully", info)
}
