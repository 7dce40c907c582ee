package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"catadopt-backend/internal/shared"
	"catadopt-backend/pkg/logger"
)

// Scheduler registers the periodic maintenance tasks of the worker.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterMaintenanceJobs wires all cron-style jobs.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerRefreshCohortSizesJob()
}

// Cohort-size projections carry a TTL, so this job only has to keep
// frequently listed announcements warm. Every 15 minutes is enough.
func (s *Scheduler) registerRefreshCohortSizesJob() error {
	payload, err := json.Marshal(shared.RefreshCohortSizesPayload{Limit: 200})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshCohortSizes, payload)

	_, err = s.scheduler.Register(
		"*/15 * * * *",
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register RefreshCohortSizes job", err)
		return err
	}

	logger.Info("Registered RefreshCohortSizes: every 15 minutes", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
