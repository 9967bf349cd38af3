package main

import (
	"github.com/hibiken/asynq"

	lendingJob "smartlibrary-backend/internal/domains/lending/job"
	"smartlibrary-backend/internal/shared"
	"smartlibrary-backend/pkg/container"
)

// HandlerRegistry holds all background job handlers.
type HandlerRegistry struct {
	overdueSweep *lendingJob.OverdueSweepHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		overdueSweep: lendingJob.NewOverdueSweepHandler(c.LendingService),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeOverdueSweep, h.overdueSweep.ProcessTask)
}
