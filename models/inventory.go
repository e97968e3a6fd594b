package models

import "time"

// Status food item
const (
	FoodItemStatusAvailable   = "Available"
	FoodItemStatusUnavailable = "Unavailable"
)

// Inventory -> satu vendor punya tepat satu inventory
type Inventory struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	VendorID       uint            `gorm:"uniqueIndex;not null" json:"vendor_id"`
	InventoryItems []InventoryItem `gorm:"foreignKey:InventoryID" json:"inventory_items"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

// InventoryItem -> food item yang dijual vendor.
// Quantity tidak boleh negatif; satu-satunya jalur pengurangan adalah
// conditional decrement saat order dibuat (lihat services.OrderService).
type InventoryItem struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	InventoryID         *uint     `gorm:"index" json:"inventory_id,omitempty"` // null selama belum di-attach ke vendor
	FoodItemName        string    `gorm:"type:varchar(255);not null;index" json:"food_item_name"`
	FoodItemDescription string    `gorm:"type:text" json:"food_item_description"`
	FoodItemClass       string    `gorm:"type:varchar(100)" json:"food_item_class"`
	ImageUrl            string    `gorm:"type:varchar(255)" json:"image_url"`
	Amount              float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	TotalAmount         float64   `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"` // Amount x Quantity, dihitung saat create
	Quantity            int       `gorm:"not null;default:0" json:"quantity"`
	Status              string    `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}
