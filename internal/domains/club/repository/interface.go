package repository

import (
	"context"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/club/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, club *model.BookClub) (*model.BookClub, error)
	// List returns clubs with their roster counts, ordered by name.
	List(ctx context.Context) ([]model.BookClub, error)
	AddMember(ctx context.Context, clubID, memberID uuid.UUID) error
}
