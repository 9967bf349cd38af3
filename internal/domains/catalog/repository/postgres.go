package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartlibrary-backend/internal/domains/catalog/model"
	"smartlibrary-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface using pgxpool, with a
// Redis read-through cache on single-book lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

// CreateBook inserts a new book. New books are always available.
func (r *postgresRepository) CreateBook(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, isbn, genre, author_id, available)
        VALUES ($1, $2, $3, $4, TRUE)
        RETURNING id, title, isbn, genre, author_id, available, created_at, updated_at
    `

	var created model.Book
	err := r.pool.QueryRow(
		ctx,
		query,
		b.Title,
		b.ISBN,
		b.Genre,
		b.AuthorID,
	).Scan(
		&created.ID,
		&created.Title,
		&created.ISBN,
		&created.Genre,
		&created.AuthorID,
		&created.Available,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" && strings.Contains(pgErr.Message, "isbn") { // unique_violation
				return nil, model.ErrDuplicateISBN
			}
			if pgErr.Code == "23503" { // foreign_key_violation on author_id
				return nil, model.ErrAuthorNotFound
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

// GetBookByID retrieves a book with caching.
func (r *postgresRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	cached, err := r.cache.Get(ctx, cacheKey, &b)
	if err == nil && cached {
		return &b, nil
	}

	query := `
        SELECT b.id, b.title, b.isbn, b.genre, b.author_id, a.name, b.available,
               b.created_at, b.updated_at
        FROM books b
        JOIN authors a ON b.author_id = a.id
        WHERE b.id = $1
    `

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.ISBN,
		&b.Genre,
		&b.AuthorID,
		&b.AuthorName,
		&b.Available,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, b, bookCacheTTL)

	return &b, nil
}

// SearchBooks matches the term against title, ISBN and author name. An empty
// term lists the whole catalog. Ordered by title, so re-running the query
// restarts the same sequence.
func (r *postgresRepository) SearchBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT b.id, b.title, b.isbn, b.genre, b.author_id, a.name, b.available,
               b.created_at, b.updated_at
        FROM books b
        JOIN authors a ON b.author_id = a.id
    `)

	args := []interface{}{}
	argPos := 1

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" WHERE b.title ILIKE $%d OR b.isbn ILIKE $%d OR a.name ILIKE $%d",
			argPos, argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	queryBuilder.WriteString(" ORDER BY b.title")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.ISBN,
			&b.Genre,
			&b.AuthorID,
			&b.AuthorName,
			&b.Available,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books: %w", err)
	}

	countQuery := `
        SELECT COUNT(*)
        FROM books b
        JOIN authors a ON b.author_id = a.id
    `
	countArgs := []interface{}{}

	if filter.Search != "" {
		countQuery += " WHERE b.title ILIKE $1 OR b.isbn ILIKE $1 OR a.name ILIKE $1"
		countArgs = append(countArgs, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// DeleteBook removes a book. The loans FK is RESTRICT, so any loan history
// blocks the delete and surfaces as ErrBookHasLoans.
func (r *postgresRepository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // foreign_key_violation
				return model.ErrBookHasLoans
			}
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())

	return nil
}

func (r *postgresRepository) CreateAuthor(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, bio)
        VALUES ($1, $2)
        RETURNING id, name, bio, created_at, updated_at
    `

	var created model.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Bio).Scan(
		&created.ID,
		&created.Name,
		&created.Bio,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) ListAuthors(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT id, name, bio, created_at, updated_at
        FROM authors
        ORDER BY name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}

	return exists, nil
}

// DeleteAuthor removes an author. The books FK blocks deletion while any
// book still references the author.
func (r *postgresRepository) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // foreign_key_violation
				return model.ErrAuthorHasBooks
			}
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	return nil
}
