package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/services"
	"github.com/bright100/CanteenApi/utils"
)

// PlaceOrderRequest -> payload POST /orders
type PlaceOrderRequest struct {
	VendorName    string                      `json:"vendor_name" binding:"required"`
	EmployeeEmail string                      `json:"employee_email" binding:"required,email"`
	Items         []services.OrderLineRequest `json:"items" binding:"required"`
}

type OrderController struct {
	DB  *gorm.DB
	Svc *services.OrderService
}

func NewOrderController(db *gorm.DB, svc *services.OrderService) *OrderController {
	return &OrderController{DB: db, Svc: svc}
}

// statusForOrderError memetakan error service ke HTTP status.
// Penolakan validasi -> 400, konflik state -> 409, not found -> 404,
// kegagalan transient -> 500 (client boleh retry).
func statusForOrderError(err error) int {
	var itemErr *services.ItemUnavailableError
	var stockErr *services.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrVendorUnavailable),
		errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.As(err, &itemErr):
		return http.StatusBadRequest
	case errors.As(err, &stockErr),
		errors.Is(err, services.ErrOrderClosed):
		return http.StatusConflict
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrVendorNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// PlaceOrder handles POST /orders
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Svc.PlaceOrder(req.VendorName, req.EmployeeEmail, req.Items)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to place order for %s: %v", req.VendorName, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d placed for vendor %s", order.ID, req.VendorName)
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return 0, false
	}
	return uint(id), true
}

// CompleteOrder handles PATCH /orders/:order_id/complete
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := oc.Svc.MarkOrderAsCompleted(orderID); err != nil {
		utils.ErrorLogger.Printf("Failed to complete order %d: %v", orderID, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order marked as completed", nil)
}

// CancelOrder handles PATCH /orders/:order_id/cancel
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := oc.Svc.CancelOrder(orderID); err != nil {
		utils.ErrorLogger.Printf("Failed to cancel order %d: %v", orderID, err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order canceled", nil)
}

// GetOrderByID handles GET /orders/:order_id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := oc.Svc.GetOrder(orderID)
	if err != nil {
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved successfully", order)
}

func paginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}

// GetAllOrders handles GET /orders
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	page, pageSize := paginationParams(c)

	orders, err := oc.Svc.GetAllOrders(page, pageSize)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to fetch orders: %v", err)
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetVendorOrders handles GET /vendors/:vendor_name/orders
func (oc *OrderController) GetVendorOrders(c *gin.Context) {
	page, pageSize := paginationParams(c)

	orders, err := oc.Svc.GetVendorOrders(c.Param("vendor_name"), page, pageSize)
	if err != nil {
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetRecentOrder handles GET /vendors/:vendor_name/orders/recent/:employee_email
func (oc *OrderController) GetRecentOrder(c *gin.Context) {
	order, err := oc.Svc.GetRecentOrder(c.Param("vendor_name"), c.Param("employee_email"))
	if err != nil {
		utils.RespondError(c, statusForOrderError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved successfully", order)
}
