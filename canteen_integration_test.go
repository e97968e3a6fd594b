package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/models"
	"github.com/bright100/CanteenApi/router"
	"github.com/bright100/CanteenApi/services"
	"github.com/bright100/CanteenApi/utils"
)

// Alur lengkap: buka kantin -> place order -> vendor menyelesaikan ->
// job expiry tidak lagi menyentuh order.
func TestCanteenOrderFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	autoMigrate(db)

	scheduler := services.NewJobScheduler(db)
	orderSvc := services.NewOrderService(db, scheduler)
	vendorSvc := services.NewVendorService(db, scheduler)
	invSvc := services.NewInventoryService(db)
	scheduler.RegisterHandler(services.ActionCancelOrder, orderSvc.HandleExpiredOrder)
	scheduler.RegisterHandler(services.ActionCloseCanteen, vendorSvc.HandleCanteenClose)

	engine := router.SetupRouter(db, orderSvc, vendorSvc, invSvc)

	// Seed vendor tutup + satu item + employee
	vendor := models.Vendor{
		VendorName:    "kantin-pusat",
		Email:         "kantin@canteen.local",
		Status:        models.VendorStatusActive,
		CanteenStatus: models.CanteenStatusClosed,
	}
	require.NoError(t, db.Create(&vendor).Error)
	inventory := models.Inventory{VendorID: vendor.ID}
	require.NoError(t, db.Create(&inventory).Error)
	item := models.InventoryItem{
		InventoryID:  &inventory.ID,
		FoodItemName: "ayam-geprek",
		Amount:       20000,
		Quantity:     12,
		Status:       models.FoodItemStatusAvailable,
	}
	require.NoError(t, db.Create(&item).Error)
	employee := models.Employee{FullName: "Sari Dewi", Email: "sari@company.local"}
	require.NoError(t, db.Create(&employee).Error)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	// Order saat kantin tutup ditolak
	orderBody := gin.H{
		"vendor_name":    vendor.VendorName,
		"employee_email": employee.Email,
		"items":          []gin.H{{"inventory_item_id": item.ID, "quantity": 2, "amount": 20000}},
	}
	w := do(http.MethodPost, "/orders", orderBody)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Buka kantin
	w = do(http.MethodPatch, "/vendors/"+vendor.VendorName+"/open", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Place order
	w = do(http.MethodPost, "/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := uint(resp.Data.(map[string]interface{})["id"].(float64))

	// Stok terpotong dan job expiry ter-arm
	var stockItem models.InventoryItem
	require.NoError(t, db.First(&stockItem, item.ID).Error)
	assert.Equal(t, 10, stockItem.Quantity)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	require.NotNil(t, order.JobID)

	// Vendor menyelesaikan order
	w = do(http.MethodPatch, fmt.Sprintf("/orders/%d/complete", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Fast-forward melewati window expiry; order COMPLETE tidak tersentuh
	scheduler.Now = func() time.Time { return time.Now().Add(services.OrderExpiryWindow + time.Hour) }
	scheduler.CheckDueJobs()

	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusComplete, order.Status)

	w = do(http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
