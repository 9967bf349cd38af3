package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartlibrary-backend/internal/domains/lending/model"
	"smartlibrary-backend/pkg/cache"
	"smartlibrary-backend/pkg/database"
	"smartlibrary-backend/pkg/logger"
)

// postgresRepository implements the lending data access. Checkout and Return
// are the two multi-statement writes in the system; both run inside a single
// transaction so no partial mutation can ever be observed.
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

const bookCacheKeyPrefix = "book:"

// invalidateBookCache drops the catalog's cached copy of the book after its
// availability changed. A failed delete means a stale entry may be served
// until the TTL expires, so the failure is logged rather than swallowed.
func (r *postgresRepository) invalidateBookCache(ctx context.Context, bookID uuid.UUID) {
	if err := r.cache.Delete(ctx, bookCacheKeyPrefix+bookID.String()); err != nil {
		logger.Warn("failed to invalidate book cache", map[string]interface{}{
			"book_id": bookID.String(),
			"error":   err.Error(),
		})
	}
}

const loanColumns = `id, book_id, member_id, borrow_date, due_date, return_date, status, created_at, updated_at`

func scanLoan(row pgx.Row, l *model.Loan) error {
	return row.Scan(
		&l.ID,
		&l.BookID,
		&l.MemberID,
		&l.BorrowDate,
		&l.DueDate,
		&l.ReturnDate,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
}

// Checkout locks the book row, claims availability and inserts the loan.
// The row lock serializes competing checkouts on the same book: the loser
// sees available=false after the winner commits and gets ErrBookUnavailable.
func (r *postgresRepository) Checkout(ctx context.Context, bookID, memberID uuid.UUID, borrowDate, dueDate time.Time) (*model.Loan, error) {
	loan, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Loan, error) {
		var available bool
		err := tx.QueryRow(ctx,
			`SELECT available FROM books WHERE id = $1 FOR UPDATE`,
			bookID,
		).Scan(&available)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrBookNotFound
			}
			return nil, fmt.Errorf("failed to lock book row: %w", err)
		}

		if !available {
			return nil, model.ErrBookUnavailable
		}

		if _, err := tx.Exec(ctx,
			`UPDATE books SET available = FALSE, updated_at = NOW() WHERE id = $1`,
			bookID,
		); err != nil {
			return nil, fmt.Errorf("failed to claim book availability: %w", err)
		}

		var created model.Loan
		err = scanLoan(tx.QueryRow(ctx, `
            INSERT INTO loans (book_id, member_id, borrow_date, due_date, status)
            VALUES ($1, $2, $3, $4, 'Active')
            RETURNING `+loanColumns,
			bookID, memberID, borrowDate, dueDate,
		), &created)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation on member_id
				return nil, model.ErrMemberNotFound
			}
			return nil, fmt.Errorf("failed to create loan: %w", err)
		}

		return &created, nil
	})

	if err != nil {
		return nil, err
	}

	r.invalidateBookCache(ctx, bookID)

	return loan, nil
}

// Return locks the loan, verifies the transition is legal and closes it,
// releasing the book in the same transaction. By the single-open-loan
// invariant there can be no other open loan on the book, so the release is
// unconditional.
func (r *postgresRepository) Return(ctx context.Context, loanID uuid.UUID, returnedAt time.Time) (*model.Loan, error) {
	loan, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Loan, error) {
		var current model.Loan
		err := scanLoan(tx.QueryRow(ctx,
			`SELECT `+loanColumns+` FROM loans WHERE id = $1 FOR UPDATE`,
			loanID,
		), &current)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrLoanNotFound
			}
			return nil, fmt.Errorf("failed to lock loan row: %w", err)
		}

		if !current.Status.Open() {
			return nil, model.ErrLoanAlreadyReturned
		}

		if returnedAt.Before(current.BorrowDate) {
			return nil, model.ErrInvalidReturnDate
		}

		var updated model.Loan
		err = scanLoan(tx.QueryRow(ctx, `
            UPDATE loans
            SET status = 'Returned', return_date = $2, updated_at = NOW()
            WHERE id = $1
            RETURNING `+loanColumns,
			loanID, returnedAt,
		), &updated)

		if err != nil {
			return nil, fmt.Errorf("failed to close loan: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE books SET available = TRUE, updated_at = NOW() WHERE id = $1`,
			updated.BookID,
		); err != nil {
			return nil, fmt.Errorf("failed to release book availability: %w", err)
		}

		return &updated, nil
	})

	if err != nil {
		return nil, err
	}

	r.invalidateBookCache(ctx, loan.BookID)

	return loan, nil
}

// MarkOverdue is a single idempotent statement: only Active loans match, so
// re-running with the same asOf transitions nothing further, and Returned or
// Overdue loans are never touched.
func (r *postgresRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	cmdTag, err := r.pool.Exec(ctx, `
        UPDATE loans
        SET status = 'Overdue', updated_at = NOW()
        WHERE status = 'Active' AND due_date < $1
    `, asOf)

	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue loans: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	var l model.Loan
	err := scanLoan(r.pool.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = $1`, id,
	), &l)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan by id: %w", err)
	}

	return &l, nil
}

func (r *postgresRepository) ListByMember(ctx context.Context, memberID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int64, error) {
	query := `
        SELECT ` + loanColumns + `
        FROM loans
        WHERE member_id = $1
        ORDER BY borrow_date DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.pool.Query(ctx, query, memberID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query member loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, 0, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating loans: %w", err)
	}

	var total int64
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE member_id = $1`, memberID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count member loans: %w", err)
	}

	return loans, total, nil
}

// List is the full loan ledger with book and member names joined, newest
// borrowings first.
func (r *postgresRepository) List(ctx context.Context, filter model.LoanFilter) ([]model.LoanDetail, int64, error) {
	query := `
        SELECT l.id, l.book_id, l.member_id, l.borrow_date, l.due_date,
               l.return_date, l.status, l.created_at, l.updated_at,
               b.title, u.name
        FROM loans l
        JOIN books b ON l.book_id = b.id
        JOIN members m ON l.member_id = m.id
        JOIN users u ON m.user_id = u.id
        ORDER BY l.borrow_date DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.LoanDetail
	for rows.Next() {
		var d model.LoanDetail
		err := rows.Scan(
			&d.ID,
			&d.BookID,
			&d.MemberID,
			&d.BorrowDate,
			&d.DueDate,
			&d.ReturnDate,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.BookTitle,
			&d.MemberName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating loans: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM loans`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	return loans, total, nil
}
