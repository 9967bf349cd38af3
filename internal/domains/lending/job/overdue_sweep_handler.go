package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"smartlibrary-backend/internal/domains/lending/service"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/pkg/logger"
)

// OverdueSweepHandler flips loans past their due date to Overdue. It runs on
// a schedule, so it acts under a synthetic librarian identity rather than a
// logged-in user.
type OverdueSweepHandler struct {
	service service.ServiceInterface
}

func NewOverdueSweepHandler(svc service.ServiceInterface) *OverdueSweepHandler {
	return &OverdueSweepHandler{
		service: svc,
	}
}

func (h *OverdueSweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	ctx = policy.WithActor(ctx, policy.Actor{
		Name: "overdue-sweeper",
		Role: policy.RoleLibrarian,
	})

	marked, err := h.service.SweepOverdue(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("overdue sweep failed", err)
		return err
	}

	logger.Info("overdue sweep completed", map[string]interface{}{
		"marked_overdue": marked,
	})
	return nil
}
