package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/club/model"
	"smartlibrary-backend/internal/domains/club/repository"
	"smartlibrary-backend/internal/shared/policy"
)

type ServiceInterface interface {
	CreateClub(ctx context.Context, req *model.CreateClubRequest) (*model.BookClub, error)
	ListClubs(ctx context.Context) ([]model.BookClub, error)
	AddClubMember(ctx context.Context, clubID, memberID uuid.UUID) error
}

type clubService struct {
	repo repository.RepositoryInterface
}

func NewClubService(repo repository.RepositoryInterface) ServiceInterface {
	return &clubService{
		repo: repo,
	}
}

func (s *clubService) CreateClub(ctx context.Context, req *model.CreateClubRequest) (*model.BookClub, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	newClub := &model.BookClub{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}

	return s.repo.Create(ctx, newClub)
}

func (s *clubService) ListClubs(ctx context.Context) ([]model.BookClub, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	return s.repo.List(ctx)
}

func (s *clubService) AddClubMember(ctx context.Context, clubID, memberID uuid.UUID) error {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return err
	}

	if clubID == uuid.Nil {
		return model.ErrClubNotFound
	}
	if memberID == uuid.Nil {
		return model.ErrMemberNotFound
	}

	return s.repo.AddMember(ctx, clubID, memberID)
}
