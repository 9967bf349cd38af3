package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/lending/model"
)

type RepositoryInterface interface {
	// Checkout atomically claims the book's availability and creates an
	// Active loan. Exactly one of two concurrent calls on the same book
	// succeeds; the other gets ErrBookUnavailable.
	Checkout(ctx context.Context, bookID, memberID uuid.UUID, borrowDate, dueDate time.Time) (*model.Loan, error)

	// Return closes an open loan and releases the book, atomically.
	Return(ctx context.Context, loanID uuid.UUID, returnedAt time.Time) (*model.Loan, error)

	// MarkOverdue transitions every Active loan whose due date is strictly
	// before asOf. Returns the number of loans transitioned.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int64, error)
	List(ctx context.Context, filter model.LoanFilter) ([]model.LoanDetail, int64, error)
}
