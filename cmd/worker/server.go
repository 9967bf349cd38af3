package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"smartlibrary-backend/internal/shared"
	"smartlibrary-backend/pkg/logger"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(redisAddr string, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueLending: 10,
				shared.QueueDefault: 5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed: "+task.Type(), err)
			}),
		},
	)

	go func() {
		logger.Info("worker starting", nil)
		if err := srv.Run(mux); err != nil {
			log.Fatalf("worker failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}
