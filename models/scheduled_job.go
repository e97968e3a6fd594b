package models

import "time"

// Status job terjadwal
const (
	JobStatusPending  = "pending"
	JobStatusDone     = "done"
	JobStatusCanceled = "canceled"
)

// ScheduledJob -> backing table untuk deferred task (expiry order,
// auto-close kantin). Disimpan di database supaya job tetap ketemu
// setelah proses restart; timer in-memory saja tidak cukup untuk
// window 2 jam.
type ScheduledJob struct {
	JobID     string    `gorm:"primaryKey;type:varchar(64)" json:"job_id"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Target    string    `gorm:"type:varchar(255);not null" json:"target"`
	RunAt     time.Time `gorm:"not null;index" json:"run_at"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
