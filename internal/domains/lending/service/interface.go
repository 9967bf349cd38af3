package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/lending/model"
)

type ServiceInterface interface {
	Checkout(ctx context.Context, bookID, memberID uuid.UUID, asOf time.Time) (*model.Loan, error)
	ReturnBook(ctx context.Context, loanID uuid.UUID, asOf time.Time) (*model.Loan, error)
	SweepOverdue(ctx context.Context, asOf time.Time) (int64, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	LoanHistory(ctx context.Context, memberID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int64, error)
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.LoanDetail, int64, error)
}
