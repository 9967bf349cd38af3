package repository

import (
	"context"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/membership/model"
)

type RepositoryInterface interface {
	// Create inserts the person identity and the membership in one
	// transaction.
	Create(ctx context.Context, m *model.Member) (*model.Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	// List returns members with their computed active-loan counts,
	// ordered by member code.
	List(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error)
}
