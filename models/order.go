package models

import "time"

// Status order. COMPLETE dan CANCELED terminal - transisi hanya lewat
// services.OrderService supaya job expiry tidak bentrok dengan status baru.
const (
	OrderStatusPending  = "PENDING"
	OrderStatusComplete = "COMPLETE"
	OrderStatusCanceled = "CANCELED"
)

type Order struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	VendorID   uint     `gorm:"not null;index" json:"vendor_id"`
	Vendor     Vendor   `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	EmployeeID uint     `gorm:"not null;index" json:"employee_id"`
	Employee   Employee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status     string   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	// SubTotal dihitung dari amount versi client, hanya untuk audit/display.
	SubTotal float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"sub_total"`
	// TotalAmountToPay selalu dari harga hasil lookup server, bukan dari client.
	TotalAmountToPay float64         `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount_to_pay"`
	JobID            *string         `gorm:"type:varchar(64)" json:"job_id,omitempty"` // handle job expiry 2 jam
	OrderFoodItems   []OrderFoodItem `gorm:"foreignKey:OrderID" json:"order_food_items"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

// OrderFoodItem -> satu baris order. Price adalah harga satuan hasil
// resolve server saat order dibuat; perubahan katalog sesudahnya tidak
// boleh mengubah nilai ini.
type OrderFoodItem struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderID         uint          `gorm:"not null;index" json:"order_id"`
	Order           Order         `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	InventoryItemID uint          `gorm:"not null" json:"inventory_item_id"`
	InventoryItem   InventoryItem `gorm:"foreignKey:InventoryItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"inventory_item"`
	Quantity        int           `gorm:"not null" json:"quantity"`
	Price           float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt       time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}
