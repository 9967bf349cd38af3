package repository

import (
	"context"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/catalog/model"
)

type RepositoryInterface interface {
	CreateBook(ctx context.Context, b *model.Book) (*model.Book, error)
	GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	SearchBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error

	CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	AuthorExists(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}
