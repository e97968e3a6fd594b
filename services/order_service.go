package services

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/hub"
	"github.com/bright100/CanteenApi/models"
	"github.com/bright100/CanteenApi/utils"
)

// OrderExpiryWindow: order PENDING yang tidak diselesaikan dalam window
// ini otomatis dibatalkan oleh job terjadwal.
const OrderExpiryWindow = 2 * time.Hour

// OrderLineRequest -> satu baris permintaan dari client. Amount adalah
// harga versi client dan hanya dipakai untuk SubTotal (audit/display);
// harga yang ditagih selalu hasil lookup server.
type OrderLineRequest struct {
	InventoryItemID uint    `json:"inventory_item_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required"`
	Amount          float64 `json:"amount"`
}

// OrderService mengorkestrasi transaksi order: cek vendor, resolve harga,
// kurangi stok, insert order - semua dalam satu unit of work.
type OrderService struct {
	db        *gorm.DB
	scheduler Scheduler
}

func NewOrderService(db *gorm.DB, scheduler Scheduler) *OrderService {
	return &OrderService{db: db, scheduler: scheduler}
}

// PlaceOrder membuat order baru. Semua-atau-tidak-sama-sekali: item yang
// tidak available atau stok yang kurang membatalkan seluruh order, tidak
// pernah ada partial order atau partial decrement.
func (s *OrderService) PlaceOrder(vendorName, employeeEmail string, lines []OrderLineRequest) (*models.Order, error) {
	// Validasi sebelum menyentuh database
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.Preload("Inventory").
			Where("vendor_name = ?", vendorName).
			First(&vendor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendorUnavailable
			}
			return err
		}
		// Vendor tanpa inventory diperlakukan sama dengan vendor tutup
		if !vendor.IsOpenForOrders() || vendor.Inventory == nil {
			return ErrVendorUnavailable
		}

		var employee models.Employee
		if err := tx.Where("email = ?", employeeEmail).First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		// Resolve harga per item. Hanya item Available yang punya harga;
		// selain itu seluruh order batal.
		prices := make(map[uint]float64, len(lines))
		var subTotal, totalToPay float64
		for _, line := range lines {
			var item models.InventoryItem
			err := tx.Where("id = ? AND status = ?",
				line.InventoryItemID, models.FoodItemStatusAvailable).
				First(&item).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ItemUnavailableError{InventoryItemID: line.InventoryItemID}
				}
				return err
			}
			prices[line.InventoryItemID] = item.Amount
			totalToPay += item.Amount * float64(line.Quantity)
			subTotal += line.Amount * float64(line.Quantity)
		}

		order = models.Order{
			VendorID:         vendor.ID,
			EmployeeID:       employee.ID,
			Status:           models.OrderStatusPending,
			SubTotal:         subTotal,
			TotalAmountToPay: totalToPay,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			foodItem := models.OrderFoodItem{
				OrderID:         order.ID,
				InventoryItemID: line.InventoryItemID,
				Quantity:        line.Quantity,
				Price:           prices[line.InventoryItemID],
			}
			if err := tx.Create(&foodItem).Error; err != nil {
				return err
			}
		}

		// Conditional decrement. WHERE quantity >= ? adalah satu-satunya
		// concurrency guard: transaksi yang kalah lihat nol baris dan
		// batal. Guard inventory_id sekaligus memastikan item memang
		// milik vendor ini.
		for _, line := range lines {
			res := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND quantity >= ? AND inventory_id = ?",
					line.InventoryItemID, line.Quantity, vendor.Inventory.ID).
				Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{InventoryItemID: line.InventoryItemID}
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapTransient(err)
	}

	// Arm expiry 2 jam. Kegagalan di sini tidak membatalkan order yang
	// sudah commit - order tinggal tanpa auto-cancel dan itu di-log.
	jobID, err := s.scheduler.Schedule(ActionCancelOrder,
		strconv.FormatUint(uint64(order.ID), 10), OrderExpiryWindow)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to schedule expiry for order %d: %v", order.ID, err)
	} else if err := s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("job_id", jobID).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to store job id for order %d: %v", order.ID, err)
	}

	var created models.Order
	if err := s.db.Preload("OrderFoodItems").First(&created, order.ID).Error; err != nil {
		return nil, wrapTransient(err)
	}

	// Fire-and-forget ke channel vendor
	hub.PublishOrderCreated(vendorName, created)

	return &created, nil
}

// MarkOrderAsCompleted menandai order COMPLETE dan disarm job expiry.
// Idempotent: dipanggil lagi pada order yang sudah COMPLETE -> no-op.
// Order yang sudah CANCELED ditolak dengan ErrOrderClosed.
func (s *OrderService) MarkOrderAsCompleted(orderID uint) error {
	return s.finishOrder(orderID, models.OrderStatusComplete)
}

// CancelOrder membatalkan order secara eksplisit dan disarm job expiry.
// Idempotent terhadap order yang sudah CANCELED. Stok yang sudah
// dikurangi TIDAK dikembalikan.
func (s *OrderService) CancelOrder(orderID uint) error {
	return s.finishOrder(orderID, models.OrderStatusCanceled)
}

// finishOrder: transisi PENDING -> terminal lewat conditional update.
// Kalau update kena nol baris, order sudah terminal: status yang sama
// berarti no-op, status lawannya berarti ErrOrderClosed.
func (s *OrderService) finishOrder(orderID uint, status string) error {
	var jobID string
	var vendorName string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}

		var order models.Order
		if err := tx.Preload("Vendor").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if res.RowsAffected == 0 && order.Status != status {
			return ErrOrderClosed
		}

		if order.JobID != nil {
			jobID = *order.JobID
		}
		vendorName = order.Vendor.VendorName
		return nil
	})
	if err != nil {
		return wrapTransient(err)
	}

	// Disarm setelah commit. Kalau job keburu fire, Cancel tetap no-op
	// dan urutan tetap aman: job expiry sendiri conditional pada PENDING,
	// jadi tidak mungkin membalik order yang sudah terminal.
	if jobID != "" {
		if err := s.scheduler.Cancel(jobID); err != nil {
			utils.ErrorLogger.Printf("Failed to cancel job %s for order %d: %v", jobID, orderID, err)
		}
	}

	var updated models.Order
	if err := s.db.Preload("OrderFoodItems").First(&updated, orderID).Error; err == nil {
		hub.PublishOrderUpdate(vendorName, updated)
	}
	return nil
}

// HandleExpiredOrder adalah handler untuk ActionCancelOrder. Transisi
// hanya terjadi kalau order masih PENDING; order yang sudah COMPLETE
// atau CANCELED lewat jalur lain membuat job ini no-op, bukan error.
func (s *OrderService) HandleExpiredOrder(target string) error {
	orderID, err := strconv.ParseUint(target, 10, 64)
	if err != nil {
		return err
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", uint(orderID), models.OrderStatusPending).
		Update("status", models.OrderStatusCanceled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		utils.InfoLogger.Printf("Expiry for order %d skipped, already terminal", orderID)
		return nil
	}
	utils.InfoLogger.Printf("Order %d not completed within %s, canceled", orderID, OrderExpiryWindow)
	return nil
}

// GetOrder -> snapshot satu order beserta line items
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderFoodItems").
		Preload("OrderFoodItems.InventoryItem").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, wrapTransient(err)
	}
	return &order, nil
}

// GetAllOrders -> list order dengan pagination, terbaru dulu
func (s *OrderService) GetAllOrders(page, pageSize int) ([]models.Order, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var orders []models.Order
	err := s.db.Preload("OrderFoodItems").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, wrapTransient(err)
	}
	return orders, nil
}

// GetVendorOrders -> semua order milik satu vendor, terbaru dulu
func (s *OrderService) GetVendorOrders(vendorName string, page, pageSize int) ([]models.Order, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var vendor models.Vendor
	if err := s.db.Where("vendor_name = ?", vendorName).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, wrapTransient(err)
	}

	var orders []models.Order
	err := s.db.Preload("OrderFoodItems").
		Where("vendor_id = ?", vendor.ID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, wrapTransient(err)
	}
	return orders, nil
}

// GetRecentOrder -> order terakhir dari satu employee ke satu vendor
func (s *OrderService) GetRecentOrder(vendorName, employeeEmail string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderFoodItems").
		Joins("JOIN vendors ON vendors.id = orders.vendor_id").
		Joins("JOIN employees ON employees.id = orders.employee_id").
		Where("vendors.vendor_name = ? AND employees.email = ?", vendorName, employeeEmail).
		Order("orders.created_at DESC, orders.id DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, wrapTransient(err)
	}
	return &order, nil
}
