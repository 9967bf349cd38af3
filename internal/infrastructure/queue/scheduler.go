package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	lendingModel "smartlibrary-backend/internal/domains/lending/model"
	"smartlibrary-backend/internal/shared"
	"smartlibrary-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	sweepCron string
}

func NewScheduler(redisAddress, sweepCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		sweepCron: sweepCron,
	}
}

// RegisterJobs wires all recurring tasks into the scheduler.
func (s *Scheduler) RegisterJobs() error {
	return s.registerOverdueSweepJob()
}

// The sweep is idempotent, so overlapping runs and retries are harmless.
func (s *Scheduler) registerOverdueSweepJob() error {
	payload, err := json.Marshal(lendingModel.OverdueSweepPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeOverdueSweep, payload)

	_, err = s.scheduler.Register(
		s.sweepCron,
		task,
		asynq.Queue(shared.QueueLending),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register overdue sweep job", err)
		return err
	}

	logger.Info("registered overdue sweep job", map[string]interface{}{
		"cron": s.sweepCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
