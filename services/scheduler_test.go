package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bright100/CanteenApi/models"
)

func TestSchedulerScheduleAndFire(t *testing.T) {
	db := setupTestDB(t)
	js := NewJobScheduler(db)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	js.Now = func() time.Time { return base }

	var fired []string
	js.RegisterHandler("test_action", func(target string) error {
		fired = append(fired, target)
		return nil
	})

	jobID, err := js.Schedule("test_action", "42", 2*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	var job models.ScheduledJob
	require.NoError(t, db.Where("job_id = ?", jobID).First(&job).Error)
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.WithinDuration(t, base.Add(2*time.Hour), job.RunAt, time.Second)

	// Belum due, tidak fire
	js.CheckDueJobs()
	assert.Empty(t, fired)

	// Lewat due, fire tepat satu kali
	js.Now = func() time.Time { return base.Add(2*time.Hour + time.Minute) }
	js.CheckDueJobs()
	require.Equal(t, []string{"42"}, fired)

	require.NoError(t, db.Where("job_id = ?", jobID).First(&job).Error)
	assert.Equal(t, models.JobStatusDone, job.Status)

	// Tick berikutnya tidak mengulang job yang sama
	js.CheckDueJobs()
	assert.Len(t, fired, 1)
}

func TestSchedulerCancel(t *testing.T) {
	db := setupTestDB(t)
	js := NewJobScheduler(db)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	js.Now = func() time.Time { return base }

	var fired int
	js.RegisterHandler("test_action", func(string) error {
		fired++
		return nil
	})

	jobID, err := js.Schedule("test_action", "7", time.Hour)
	require.NoError(t, err)

	require.NoError(t, js.Cancel(jobID))

	var job models.ScheduledJob
	require.NoError(t, db.Where("job_id = ?", jobID).First(&job).Error)
	assert.Equal(t, models.JobStatusCanceled, job.Status)

	js.Now = func() time.Time { return base.Add(2 * time.Hour) }
	js.CheckDueJobs()
	assert.Zero(t, fired)

	// Cancel ulang, handle tak dikenal, dan handle kosong -> no-op semua
	require.NoError(t, js.Cancel(jobID))
	require.NoError(t, js.Cancel("bukan-job-id"))
	require.NoError(t, js.Cancel(""))
}

func TestSchedulerSurvivesRestart(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	first := NewJobScheduler(db)
	first.Now = func() time.Time { return base }
	jobID, err := first.Schedule("test_action", "99", time.Hour)
	require.NoError(t, err)

	// "Restart": instance baru menunjuk database yang sama
	second := NewJobScheduler(db)
	second.Now = func() time.Time { return base.Add(90 * time.Minute) }

	var fired []string
	second.RegisterHandler("test_action", func(target string) error {
		fired = append(fired, target)
		return nil
	})
	second.CheckDueJobs()

	require.Equal(t, []string{"99"}, fired)

	var job models.ScheduledJob
	require.NoError(t, db.Where("job_id = ?", jobID).First(&job).Error)
	assert.Equal(t, models.JobStatusDone, job.Status)
}

func TestSchedulerUnregisteredAction(t *testing.T) {
	db := setupTestDB(t)
	js := NewJobScheduler(db)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	js.Now = func() time.Time { return base }

	_, err := js.Schedule("misterius", "1", time.Minute)
	require.NoError(t, err)

	js.Now = func() time.Time { return base.Add(time.Hour) }
	// Tidak panic walaupun tidak ada handler; job tetap ter-claim
	js.CheckDueJobs()

	var count int64
	db.Model(&models.ScheduledJob{}).
		Where("status = ?", models.JobStatusPending).
		Count(&count)
	assert.Zero(t, count)
}

func TestSchedulerStartStop(t *testing.T) {
	db := setupTestDB(t)
	js := NewJobScheduler(db)
	js.Interval = 10 * time.Millisecond

	fired := make(chan string, 1)
	js.RegisterHandler("test_action", func(target string) error {
		select {
		case fired <- target:
		default:
		}
		return nil
	})

	_, err := js.Schedule("test_action", "fast", -time.Second) // langsung due
	require.NoError(t, err)

	js.Start()
	defer js.Stop()

	select {
	case target := <-fired:
		assert.Equal(t, "fast", target)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job was not executed by ticker loop")
	}
}
