package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bright100/CanteenApi/models"
	"github.com/bright100/CanteenApi/utils"
)

// Action yang dikenal scheduler
const (
	ActionCancelOrder  = "cancel_order"
	ActionCloseCanteen = "close_canteen"
)

// Scheduler adalah deferred-task facility yang di-inject ke service.
// Schedule mengembalikan handle opaque; Cancel dengan handle yang sudah
// fire atau tidak dikenal selalu no-op, tidak pernah error.
type Scheduler interface {
	Schedule(action, target string, delay time.Duration) (string, error)
	Cancel(jobID string) error
}

// JobHandler mengeksekusi satu job yang sudah due.
type JobHandler func(target string) error

// JobScheduler adalah implementasi Scheduler dengan backing table
// scheduled_jobs yang dipoll goroutine ticker. Job bertahan melewati
// restart proses; instance baru tinggal poll table yang sama.
type JobScheduler struct {
	DB       *gorm.DB
	Interval time.Duration
	Now      func() time.Time // bisa di-override di test untuk fast-forward
	StopChan chan struct{}

	mu       sync.Mutex
	handlers map[string]JobHandler
}

func NewJobScheduler(db *gorm.DB) *JobScheduler {
	return &JobScheduler{
		DB:       db,
		Interval: 30 * time.Second,
		Now:      time.Now,
		StopChan: make(chan struct{}),
		handlers: make(map[string]JobHandler),
	}
}

// RegisterHandler mendaftarkan eksekutor untuk satu action.
func (js *JobScheduler) RegisterHandler(action string, fn JobHandler) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.handlers[action] = fn
}

func (js *JobScheduler) Start() {
	go func() {
		ticker := time.NewTicker(js.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				js.CheckDueJobs()
			case <-js.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Job scheduler started")
}

func (js *JobScheduler) Stop() {
	close(js.StopChan)
}

// Schedule menyimpan job baru yang due setelah delay.
func (js *JobScheduler) Schedule(action, target string, delay time.Duration) (string, error) {
	job := models.ScheduledJob{
		JobID:  uuid.NewString(),
		Action: action,
		Target: target,
		RunAt:  js.Now().Add(delay),
		Status: models.JobStatusPending,
	}
	if err := js.DB.Create(&job).Error; err != nil {
		return "", err
	}
	return job.JobID, nil
}

// Cancel membatalkan job yang masih pending. Handle kosong, tidak dikenal,
// atau job yang sudah fire -> no-op.
func (js *JobScheduler) Cancel(jobID string) error {
	if jobID == "" {
		return nil
	}
	return js.DB.Model(&models.ScheduledJob{}).
		Where("job_id = ? AND status = ?", jobID, models.JobStatusPending).
		Update("status", models.JobStatusCanceled).Error
}

// CheckDueJobs menjalankan semua job yang sudah due. Setiap job di-claim
// dulu lewat conditional update status pending -> done, jadi job fire
// paling banyak satu kali walaupun ada dua scheduler menunjuk database
// yang sama.
func (js *JobScheduler) CheckDueJobs() {
	var jobs []models.ScheduledJob
	if err := js.DB.
		Where("status = ? AND run_at <= ?", models.JobStatusPending, js.Now()).
		Order("run_at ASC").
		Limit(100).
		Find(&jobs).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching due jobs: %v", err)
		return
	}

	for _, job := range jobs {
		res := js.DB.Model(&models.ScheduledJob{}).
			Where("job_id = ? AND status = ?", job.JobID, models.JobStatusPending).
			Update("status", models.JobStatusDone)
		if res.Error != nil {
			utils.ErrorLogger.Printf("Error claiming job %s: %v", job.JobID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			// keburu dibatalkan atau di-claim scheduler lain
			continue
		}
		js.runJob(job)
	}
}

func (js *JobScheduler) runJob(job models.ScheduledJob) {
	js.mu.Lock()
	fn := js.handlers[job.Action]
	js.mu.Unlock()

	if fn == nil {
		utils.ErrorLogger.Printf("No handler registered for action %s (job %s)", job.Action, job.JobID)
		return
	}
	if err := fn(job.Target); err != nil {
		utils.ErrorLogger.Printf("Job %s (%s %s) failed: %v", job.JobID, job.Action, job.Target, err)
		return
	}
	utils.InfoLogger.Printf("Job %s (%s %s) executed", job.JobID, job.Action, job.Target)
}
