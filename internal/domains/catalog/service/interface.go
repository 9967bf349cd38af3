package service

import (
	"context"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	AddBook(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	SearchBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	RemoveBook(ctx context.Context, id uuid.UUID) error

	CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}
