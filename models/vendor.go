package models

import "time"

// Status vendor (closed set, jangan tulis string bebas ke kolom ini)
const (
	VendorStatusActive    = "ACTIVE"
	VendorStatusInactive  = "INACTIVE"
	VendorStatusSuspended = "SUSPENDED"
)

// Status kantin vendor
const (
	CanteenStatusOpen   = "Open"
	CanteenStatusClosed = "Closed"
)

type Vendor struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	VendorName    string     `gorm:"type:varchar(255);unique;not null" json:"vendor_name"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Status        string     `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CanteenStatus string     `gorm:"type:varchar(10);not null;default:'Closed'" json:"canteen_status"`
	CloseJobID    *string    `gorm:"type:varchar(64)" json:"-"` // handle job auto-close kantin
	Inventory     *Inventory `gorm:"foreignKey:VendorID" json:"inventory,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

// IsOpenForOrders -> vendor hanya boleh menerima order kalau ACTIVE dan kantin Open
func (v *Vendor) IsOpenForOrders() bool {
	return v.Status == VendorStatusActive && v.CanteenStatus == CanteenStatusOpen
}
