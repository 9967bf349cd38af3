package main

import (
	"log"

	"smartlibrary-backend/internal/infrastructure/queue"
	"smartlibrary-backend/pkg/logger"
)

type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisAddr, sweepCron string) *asynqScheduler {
	scheduler := queue.NewScheduler(redisAddr, sweepCron)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("scheduler registration failed: %v", err)
	}

	go func() {
		logger.Info("scheduler starting", nil)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("scheduler failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}
