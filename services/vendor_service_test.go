package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/models"
)

func newVendorFixture(t *testing.T) (*gorm.DB, *VendorService, *JobScheduler, models.Vendor) {
	t.Helper()
	db := setupTestDB(t)
	scheduler := NewJobScheduler(db)
	svc := NewVendorService(db, scheduler)
	scheduler.RegisterHandler(ActionCloseCanteen, svc.HandleCanteenClose)
	vendor, _, _ := seedCanteen(t, db)
	return db, svc, scheduler, vendor
}

func TestOpenCanteenArmsAutoClose(t *testing.T) {
	db, svc, _, vendor := newVendorFixture(t)

	// Mulai dari tutup
	require.NoError(t, db.Model(&models.Vendor{}).
		Where("id = ?", vendor.ID).
		Update("canteen_status", models.CanteenStatusClosed).Error)

	require.NoError(t, svc.OpenCanteen(vendor.VendorName))

	var stored models.Vendor
	require.NoError(t, db.First(&stored, vendor.ID).Error)
	assert.Equal(t, models.CanteenStatusOpen, stored.CanteenStatus)
	require.NotNil(t, stored.CloseJobID)

	var job models.ScheduledJob
	require.NoError(t, db.Where("job_id = ?", *stored.CloseJobID).First(&job).Error)
	assert.Equal(t, ActionCloseCanteen, job.Action)
	assert.Equal(t, vendor.VendorName, job.Target)
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.WithinDuration(t, time.Now().Add(CanteenOpenWindow), job.RunAt, time.Minute)
}

func TestReopenCancelsPreviousCloseJob(t *testing.T) {
	db, svc, _, vendor := newVendorFixture(t)

	require.NoError(t, svc.OpenCanteen(vendor.VendorName))

	var first models.Vendor
	require.NoError(t, db.First(&first, vendor.ID).Error)
	require.NotNil(t, first.CloseJobID)
	firstJobID := *first.CloseJobID

	require.NoError(t, svc.OpenCanteen(vendor.VendorName))

	var oldJob models.ScheduledJob
	require.NoError(t, db.Where("job_id = ?", firstJobID).First(&oldJob).Error)
	assert.Equal(t, models.JobStatusCanceled, oldJob.Status)

	var second models.Vendor
	require.NoError(t, db.First(&second, vendor.ID).Error)
	require.NotNil(t, second.CloseJobID)
	assert.NotEqual(t, firstJobID, *second.CloseJobID)

	// Hanya satu job close yang masih pending
	var pending int64
	db.Model(&models.ScheduledJob{}).
		Where("action = ? AND status = ?", ActionCloseCanteen, models.JobStatusPending).
		Count(&pending)
	assert.Equal(t, int64(1), pending)
}

func TestCloseCanteen(t *testing.T) {
	db, svc, _, vendor := newVendorFixture(t)

	require.NoError(t, svc.CloseCanteen(vendor.VendorName))

	var stored models.Vendor
	require.NoError(t, db.First(&stored, vendor.ID).Error)
	assert.Equal(t, models.CanteenStatusClosed, stored.CanteenStatus)

	assert.ErrorIs(t, svc.CloseCanteen("Warung Hantu"), ErrVendorNotFound)
	assert.ErrorIs(t, svc.OpenCanteen("Warung Hantu"), ErrVendorNotFound)
}

func TestAutoCloseFires(t *testing.T) {
	db, svc, scheduler, vendor := newVendorFixture(t)

	require.NoError(t, svc.OpenCanteen(vendor.VendorName))

	scheduler.Now = func() time.Time { return time.Now().Add(CanteenOpenWindow + time.Hour) }
	scheduler.CheckDueJobs()

	var stored models.Vendor
	require.NoError(t, db.First(&stored, vendor.ID).Error)
	assert.Equal(t, models.CanteenStatusClosed, stored.CanteenStatus)
}

func TestHandleCanteenCloseMissingVendor(t *testing.T) {
	_, svc, _, _ := newVendorFixture(t)

	// Vendor sudah tidak ada -> job jadi no-op, bukan error
	require.NoError(t, svc.HandleCanteenClose("Warung Hantu"))
}

func TestMarkAllVendorsAsClosed(t *testing.T) {
	db, svc, _, _ := newVendorFixture(t)

	second := models.Vendor{
		VendorName:    "Warung Pak Joko",
		Email:         "pakjoko@canteen.local",
		Status:        models.VendorStatusActive,
		CanteenStatus: models.CanteenStatusOpen,
	}
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, svc.MarkAllVendorsAsClosed())

	var open int64
	db.Model(&models.Vendor{}).
		Where("canteen_status = ?", models.CanteenStatusOpen).
		Count(&open)
	assert.Zero(t, open)
}

func TestGetVendorStatus(t *testing.T) {
	db, svc, _, vendor := newVendorFixture(t)

	info, err := svc.GetVendorStatus(vendor.VendorName)
	require.NoError(t, err)
	assert.Equal(t, vendor.VendorName, info.VendorName)
	assert.True(t, info.Active)
	assert.True(t, info.CanteenOpen)

	require.NoError(t, db.Model(&models.Vendor{}).
		Where("id = ?", vendor.ID).
		Updates(map[string]interface{}{
			"status":         models.VendorStatusInactive,
			"canteen_status": models.CanteenStatusClosed,
		}).Error)

	info, err = svc.GetVendorStatus(vendor.VendorName)
	require.NoError(t, err)
	assert.False(t, info.Active)
	assert.False(t, info.CanteenOpen)

	_, err = svc.GetVendorStatus("Warung Hantu")
	assert.ErrorIs(t, err, ErrVendorNotFound)
}
