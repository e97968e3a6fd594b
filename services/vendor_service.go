package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/models"
	"github.com/bright100/CanteenApi/utils"
)

// CanteenOpenWindow: kantin yang dibuka otomatis ditutup lagi setelah
// window ini, secara struktur sama dengan expiry order.
const CanteenOpenWindow = 7 * 24 * time.Hour

// VendorStatusInfo -> ringkasan status vendor untuk pihak luar
type VendorStatusInfo struct {
	VendorName  string `json:"vendor_name"`
	Active      bool   `json:"active"`
	CanteenOpen bool   `json:"canteen_open"`
}

// VendorService mengelola status operasional vendor (buka/tutup kantin).
type VendorService struct {
	db        *gorm.DB
	scheduler Scheduler
}

func NewVendorService(db *gorm.DB, scheduler Scheduler) *VendorService {
	return &VendorService{db: db, scheduler: scheduler}
}

// OpenCanteen membuka kantin vendor dan memasang job auto-close 7 hari.
// Job close lama (kalau ada) dibatalkan dulu supaya tidak ada dua job
// close untuk vendor yang sama.
func (vs *VendorService) OpenCanteen(vendorName string) error {
	var oldJobID string

	err := vs.db.Transaction(func(tx *gorm.DB) error {
		var vendor models.Vendor
		if err := tx.Where("vendor_name = ?", vendorName).First(&vendor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return err
		}
		if vendor.CloseJobID != nil {
			oldJobID = *vendor.CloseJobID
		}
		return tx.Model(&vendor).
			Update("canteen_status", models.CanteenStatusOpen).Error
	})
	if err != nil {
		return wrapTransient(err)
	}

	if oldJobID != "" {
		if err := vs.scheduler.Cancel(oldJobID); err != nil {
			utils.ErrorLogger.Printf("Failed to cancel previous close job for %s: %v", vendorName, err)
		}
	}

	jobID, err := vs.scheduler.Schedule(ActionCloseCanteen, vendorName, CanteenOpenWindow)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to schedule auto-close for %s: %v", vendorName, err)
		return nil
	}
	if err := vs.db.Model(&models.Vendor{}).
		Where("vendor_name = ?", vendorName).
		Update("close_job_id", jobID).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to store close job id for %s: %v", vendorName, err)
	}
	return nil
}

// CloseCanteen menutup kantin vendor.
func (vs *VendorService) CloseCanteen(vendorName string) error {
	res := vs.db.Model(&models.Vendor{}).
		Where("vendor_name = ?", vendorName).
		Update("canteen_status", models.CanteenStatusClosed)
	if res.Error != nil {
		return wrapTransient(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVendorNotFound
	}
	return nil
}

// HandleCanteenClose adalah handler untuk ActionCloseCanteen. Menutup
// kantin itu idempotent, jadi job yang fire setelah vendor menutup
// manual tetap aman.
func (vs *VendorService) HandleCanteenClose(target string) error {
	err := vs.CloseCanteen(target)
	if errors.Is(err, ErrVendorNotFound) {
		utils.InfoLogger.Printf("Auto-close skipped, vendor %s no longer exists", target)
		return nil
	}
	return err
}

// MarkAllVendorsAsClosed menutup semua kantin sekaligus.
func (vs *VendorService) MarkAllVendorsAsClosed() error {
	err := vs.db.Model(&models.Vendor{}).
		Where("canteen_status = ?", models.CanteenStatusOpen).
		Update("canteen_status", models.CanteenStatusClosed).Error
	return wrapTransient(err)
}

// GetVendorStatus -> status operasional vendor by name
func (vs *VendorService) GetVendorStatus(vendorName string) (*VendorStatusInfo, error) {
	var vendor models.Vendor
	if err := vs.db.Where("vendor_name = ?", vendorName).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, wrapTransient(err)
	}
	return &VendorStatusInfo{
		VendorName:  vendor.VendorName,
		Active:      vendor.Status == models.VendorStatusActive,
		CanteenOpen: vendor.CanteenStatus == models.CanteenStatusOpen,
	}, nil
}
