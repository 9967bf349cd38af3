package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartlibrary-backend/internal/domains/lending/model"
	"smartlibrary-backend/internal/domains/lending/repository"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/pkg/logger"
)

// lendingService drives the loan state machine. The availability check and
// the loan insert are one atomic unit inside the repository; the service
// owns the calendar rules (loan period, strict overdue comparison) and the
// role gate.
type lendingService struct {
	repo       repository.RepositoryInterface
	loanPeriod time.Duration
}

func NewLendingService(repo repository.RepositoryInterface, loanPeriodDays int) ServiceInterface {
	return &lendingService{
		repo:       repo,
		loanPeriod: time.Duration(loanPeriodDays) * 24 * time.Hour,
	}
}

func (s *lendingService) Checkout(ctx context.Context, bookID, memberID uuid.UUID, asOf time.Time) (*model.Loan, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return nil, err
	}

	if bookID == uuid.Nil {
		return nil, model.ErrBookNotFound
	}
	if memberID == uuid.Nil {
		return nil, model.ErrMemberNotFound
	}

	borrowDate := asOf
	dueDate := asOf.Add(s.loanPeriod)

	loan, err := s.repo.Checkout(ctx, bookID, memberID, borrowDate, dueDate)
	if err != nil {
		return nil, err
	}

	logger.Info("book checked out", map[string]interface{}{
		"loan_id":   loan.ID,
		"book_id":   loan.BookID,
		"member_id": loan.MemberID,
		"due_date":  loan.DueDate,
	})

	return loan, nil
}

func (s *lendingService) ReturnBook(ctx context.Context, loanID uuid.UUID, asOf time.Time) (*model.Loan, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return nil, err
	}

	if loanID == uuid.Nil {
		return nil, model.ErrLoanNotFound
	}

	loan, err := s.repo.Return(ctx, loanID, asOf)
	if err != nil {
		return nil, err
	}

	logger.Info("book returned", map[string]interface{}{
		"loan_id": loan.ID,
		"book_id": loan.BookID,
	})

	return loan, nil
}

// SweepOverdue flips every Active loan past its due date to Overdue. Runs
// on the worker's schedule and on demand from the librarian endpoint; both
// paths end up in the same idempotent statement, so overlapping runs are
// harmless.
func (s *lendingService) SweepOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	if _, err := policy.RequireLibrarian(ctx); err != nil {
		return 0, err
	}

	count, err := s.repo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		logger.Info("overdue sweep completed", map[string]interface{}{
			"transitioned": count,
			"as_of":        asOf,
		})
	}

	return count, nil
}

func (s *lendingService) GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		return nil, model.ErrLoanNotFound
	}

	return s.repo.GetByID(ctx, id)
}

func (s *lendingService) LoanHistory(ctx context.Context, memberID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int64, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, 0, err
	}

	if memberID == uuid.Nil {
		return nil, 0, model.ErrMemberNotFound
	}

	sanitizeFilter(&filter)

	return s.repo.ListByMember(ctx, memberID, filter)
}

func (s *lendingService) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.LoanDetail, int64, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, 0, err
	}

	sanitizeFilter(&filter)

	return s.repo.List(ctx, filter)
}

func sanitizeFilter(filter *model.LoanFilter) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
}
