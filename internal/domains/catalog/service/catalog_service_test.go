package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlibrary-backend/internal/domains/catalog/model"
	"smartlibrary-backend/internal/shared/policy"
)

type fakeCatalogRepo struct {
	books   map[uuid.UUID]*model.Book
	authors map[uuid.UUID]*model.Author

	// booksWithLoans marks books whose delete must fail, the way a
	// RESTRICT foreign key would in Postgres.
	booksWithLoans map[uuid.UUID]bool

	lastFilter model.BookFilter
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		books:          make(map[uuid.UUID]*model.Book),
		authors:        make(map[uuid.UUID]*model.Author),
		booksWithLoans: make(map[uuid.UUID]bool),
	}
}

func (f *fakeCatalogRepo) addAuthor(name string) uuid.UUID {
	id := uuid.New()
	f.authors[id] = &model.Author{ID: id, Name: name}
	return id
}

func (f *fakeCatalogRepo) CreateBook(_ context.Context, b *model.Book) (*model.Book, error) {
	for _, existing := range f.books {
		if existing.ISBN == b.ISBN {
			return nil, model.ErrDuplicateISBN
		}
	}

	b.ID = uuid.New()
	b.Available = true
	f.books[b.ID] = b
	return b, nil
}

func (f *fakeCatalogRepo) GetBookByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeCatalogRepo) SearchBooks(_ context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	f.lastFilter = filter

	var books []model.Book
	for _, b := range f.books {
		if filter.Search == "" || strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Search)) {
			books = append(books, *b)
		}
	}
	return books, int64(len(books)), nil
}

func (f *fakeCatalogRepo) DeleteBook(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.ErrBookNotFound
	}
	if f.booksWithLoans[id] {
		return model.ErrBookHasLoans
	}
	delete(f.books, id)
	return nil
}

func (f *fakeCatalogRepo) CreateAuthor(_ context.Context, a *model.Author) (*model.Author, error) {
	a.ID = uuid.New()
	f.authors[a.ID] = a
	return a, nil
}

func (f *fakeCatalogRepo) ListAuthors(_ context.Context) ([]model.Author, error) {
	var authors []model.Author
	for _, a := range f.authors {
		authors = append(authors, *a)
	}
	return authors, nil
}

func (f *fakeCatalogRepo) AuthorExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.authors[id]
	return ok, nil
}

func (f *fakeCatalogRepo) DeleteAuthor(_ context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	for _, b := range f.books {
		if b.AuthorID == id {
			return model.ErrAuthorHasBooks
		}
	}
	delete(f.authors, id)
	return nil
}

func librarianCtx() context.Context {
	return policy.WithActor(context.Background(), policy.Actor{
		UserID: uuid.New(),
		Name:   "alice",
		Role:   policy.RoleLibrarian,
	})
}

func memberCtx() context.Context {
	return policy.WithActor(context.Background(), policy.Actor{
		UserID: uuid.New(),
		Name:   "bob",
		Role:   policy.RoleMember,
	})
}

func TestAddBook(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	authorID := repo.addAuthor("Ursula K. Le Guin")

	book, err := svc.AddBook(librarianCtx(), &model.CreateBookRequest{
		Title:    "  A Wizard of Earthsea ",
		ISBN:     "978-0-547-77374-3",
		Genre:    "Fantasy",
		AuthorID: authorID,
	})
	require.NoError(t, err)

	assert.Equal(t, "A Wizard of Earthsea", book.Title)
	assert.True(t, book.Available)
}

func TestAddBookDuplicateISBN(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	authorID := repo.addAuthor("Ursula K. Le Guin")

	req := &model.CreateBookRequest{
		Title:    "A Wizard of Earthsea",
		ISBN:     "978-0-547-77374-3",
		AuthorID: authorID,
	}

	_, err := svc.AddBook(librarianCtx(), req)
	require.NoError(t, err)

	_, err = svc.AddBook(librarianCtx(), req)
	assert.ErrorIs(t, err, model.ErrDuplicateISBN)
}

func TestAddBookUnknownAuthor(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	_, err := svc.AddBook(librarianCtx(), &model.CreateBookRequest{
		Title:    "Orphaned",
		ISBN:     "123",
		AuthorID: uuid.New(),
	})
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestAddBookValidation(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	_, err := svc.AddBook(librarianCtx(), &model.CreateBookRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestAddBookRequiresLibrarian(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	authorID := repo.addAuthor("Ursula K. Le Guin")

	req := &model.CreateBookRequest{Title: "X", ISBN: "1", AuthorID: authorID}

	_, err := svc.AddBook(memberCtx(), req)
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)

	_, err = svc.AddBook(context.Background(), req)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestRemoveBookWithLoanHistory(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	authorID := repo.addAuthor("Ursula K. Le Guin")

	book, err := svc.AddBook(librarianCtx(), &model.CreateBookRequest{
		Title: "A Wizard of Earthsea", ISBN: "978", AuthorID: authorID,
	})
	require.NoError(t, err)

	repo.booksWithLoans[book.ID] = true

	err = svc.RemoveBook(librarianCtx(), book.ID)
	assert.ErrorIs(t, err, model.ErrBookHasLoans)
}

func TestSearchBooksEscapesWildcards(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	_, _, err := svc.SearchBooks(memberCtx(), model.BookFilter{Search: "100% _case_"})
	require.NoError(t, err)

	assert.Equal(t, `100\% \_case\_`, repo.lastFilter.Search)
}

func TestSearchBooksClampsPagination(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	_, _, err := svc.SearchBooks(memberCtx(), model.BookFilter{Limit: 10000, Offset: -3})
	require.NoError(t, err)

	assert.Equal(t, 200, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestDeleteAuthorWithBooks(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)
	authorID := repo.addAuthor("Ursula K. Le Guin")

	_, err := svc.AddBook(librarianCtx(), &model.CreateBookRequest{
		Title: "A Wizard of Earthsea", ISBN: "978", AuthorID: authorID,
	})
	require.NoError(t, err)

	err = svc.DeleteAuthor(librarianCtx(), authorID)
	assert.ErrorIs(t, err, model.ErrAuthorHasBooks)
}

func TestCreateAuthor(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo())

	author, err := svc.CreateAuthor(librarianCtx(), &model.CreateAuthorRequest{Name: " Ursula K. Le Guin "})
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", author.Name)

	_, err = svc.CreateAuthor(librarianCtx(), &model.CreateAuthorRequest{})
	assert.Error(t, err)
}
