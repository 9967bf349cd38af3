package service

import (
	"context"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/membership/model"
)

type ServiceInterface interface {
	AddMember(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*model.Member, error)
	ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error)
}
