package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/membership/model"
	"smartlibrary-backend/internal/domains/membership/repository"
	"smartlibrary-backend/internal/shared/policy"
)

type membershipService struct {
	repo repository.RepositoryInterface
}

func NewMembershipService(repo repository.RepositoryInterface) ServiceInterface {
	return &membershipService{
		repo: repo,
	}
}

func (s *membershipService) AddMember(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	newMember := &model.Member{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(strings.ToLower(req.Email)),
		MemberCode: strings.TrimSpace(req.MemberCode),
		Contact:    strings.TrimSpace(req.Contact),
	}

	return s.repo.Create(ctx, newMember)
}

func (s *membershipService) GetMember(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		return nil, model.ErrMemberNotFound
	}

	return s.repo.GetByID(ctx, id)
}

func (s *membershipService) ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.List(ctx, filter)
}
