package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/models"
)

// InventoryService mengelola stok dan status food item per vendor.
// Pengurangan stok TIDAK lewat sini - itu eksklusif milik OrderService
// supaya selalu lewat conditional decrement.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (is *InventoryService) vendorInventoryID(tx *gorm.DB, vendorName string) (uint, error) {
	var vendor models.Vendor
	if err := tx.Preload("Inventory").
		Where("vendor_name = ?", vendorName).
		First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrVendorNotFound
		}
		return 0, err
	}
	if vendor.Inventory == nil {
		return 0, ErrItemNotFound
	}
	return vendor.Inventory.ID, nil
}

// AddToFoodItem menambah stok (restock) untuk satu food item milik vendor.
func (is *InventoryService) AddToFoodItem(itemName, vendorName string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	err := is.db.Transaction(func(tx *gorm.DB) error {
		inventoryID, err := is.vendorInventoryID(tx, vendorName)
		if err != nil {
			return err
		}
		res := tx.Model(&models.InventoryItem{}).
			Where("food_item_name = ? AND inventory_id = ?", itemName, inventoryID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
	return wrapTransient(err)
}

// MarkFoodItemStatus menandai food item Available/Unavailable
// (vendor menandai sold out).
func (is *InventoryService) MarkFoodItemStatus(itemName, vendorName, status string) error {
	if status != models.FoodItemStatusAvailable && status != models.FoodItemStatusUnavailable {
		return ErrInvalidStatus
	}

	err := is.db.Transaction(func(tx *gorm.DB) error {
		inventoryID, err := is.vendorInventoryID(tx, vendorName)
		if err != nil {
			return err
		}
		res := tx.Model(&models.InventoryItem{}).
			Where("food_item_name = ? AND inventory_id = ?", itemName, inventoryID).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
	return wrapTransient(err)
}

// AddItemToInventory meng-attach item yang sudah ada ke inventory vendor.
func (is *InventoryService) AddItemToInventory(vendorName, itemName string) error {
	err := is.db.Transaction(func(tx *gorm.DB) error {
		inventoryID, err := is.vendorInventoryID(tx, vendorName)
		if err != nil {
			return err
		}
		res := tx.Model(&models.InventoryItem{}).
			Where("food_item_name = ? AND inventory_id IS NULL", itemName).
			Update("inventory_id", inventoryID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
	return wrapTransient(err)
}

// GetAllItems -> semua item milik vendor dengan pagination
func (is *InventoryService) GetAllItems(vendorName string, page, pageSize int) ([]models.InventoryItem, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	inventoryID, err := is.vendorInventoryID(is.db, vendorName)
	if err != nil {
		return nil, wrapTransient(err)
	}

	var items []models.InventoryItem
	err = is.db.Where("inventory_id = ?", inventoryID).
		Order("food_item_name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, wrapTransient(err)
	}
	return items, nil
}
