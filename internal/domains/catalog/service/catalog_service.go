package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/catalog/model"
	"smartlibrary-backend/internal/domains/catalog/repository"
	"smartlibrary-backend/internal/shared/policy"
)

// catalogService holds the book and author business rules. Mutations are
// librarian-only, enforced here through the policy gate so the rule lives in
// one place regardless of which transport called us.
type catalogService struct {
	repo repository.RepositoryInterface
}

func NewCatalogService(repo repository.RepositoryInterface) ServiceInterface {
	return &catalogService{
		repo: repo,
	}
}

func (s *catalogService) AddBook(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Pre-check gives a clean NotFound instead of a raw FK violation.
	exists, err := s.repo.AuthorExists(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrAuthorNotFound
	}

	newBook := &model.Book{
		Title:    strings.TrimSpace(req.Title),
		ISBN:     strings.TrimSpace(req.ISBN),
		Genre:    strings.TrimSpace(req.Genre),
		AuthorID: req.AuthorID,
	}

	return s.repo.CreateBook(ctx, newBook)
}

func (s *catalogService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}

	return s.repo.GetBookByID(ctx, id)
}

func (s *catalogService) SearchBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, 0, err
	}

	filter.Search = escapeWildcards(strings.TrimSpace(filter.Search))

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.SearchBooks(ctx, filter)
}

// RemoveBook deletes a book. Any loan referencing it, open or returned,
// blocks the delete: loan rows are the audit trail and must keep resolving.
func (s *catalogService) RemoveBook(ctx context.Context, id uuid.UUID) error {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return err
	}

	if id == uuid.Nil {
		return model.ErrBookNotFound
	}

	return s.repo.DeleteBook(ctx, id)
}

func (s *catalogService) CreateAuthor(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	newAuthor := &model.Author{
		Name: strings.TrimSpace(req.Name),
		Bio:  req.Bio,
	}

	return s.repo.CreateAuthor(ctx, newAuthor)
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	return s.repo.ListAuthors(ctx)
}

func (s *catalogService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return err
	}

	if id == uuid.Nil {
		return model.ErrAuthorNotFound
	}

	return s.repo.DeleteAuthor(ctx, id)
}

// escapeWildcards keeps user input from injecting ILIKE wildcards.
func escapeWildcards(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
