package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlibrary-backend/internal/domains/lending/model"
	"smartlibrary-backend/internal/shared/policy"
)

// fakeLendingRepo mirrors the real repository's atomicity: the availability
// check and the loan insert happen under one lock, so concurrent checkouts
// race exactly the way they do against the row lock in Postgres.
type fakeLendingRepo struct {
	mu    sync.Mutex
	books map[uuid.UUID]bool // id -> available
	loans map[uuid.UUID]*model.Loan
}

func newFakeLendingRepo() *fakeLendingRepo {
	return &fakeLendingRepo{
		books: make(map[uuid.UUID]bool),
		loans: make(map[uuid.UUID]*model.Loan),
	}
}

func (f *fakeLendingRepo) addBook() uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.books[id] = true
	return id
}

func (f *fakeLendingRepo) Checkout(_ context.Context, bookID, memberID uuid.UUID, borrowDate, dueDate time.Time) (*model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	available, ok := f.books[bookID]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	if !available {
		return nil, model.ErrBookUnavailable
	}

	f.books[bookID] = false
	loan := &model.Loan{
		ID:         uuid.New(),
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		Status:     model.StatusActive,
	}
	f.loans[loan.ID] = loan
	return loan, nil
}

func (f *fakeLendingRepo) Return(_ context.Context, loanID uuid.UUID, returnedAt time.Time) (*model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	loan, ok := f.loans[loanID]
	if !ok {
		return nil, model.ErrLoanNotFound
	}
	if !loan.Status.Open() {
		return nil, model.ErrLoanAlreadyReturned
	}
	if returnedAt.Before(loan.BorrowDate) {
		return nil, model.ErrInvalidReturnDate
	}

	loan.Status = model.StatusReturned
	loan.ReturnDate = &returnedAt
	f.books[loan.BookID] = true
	return loan, nil
}

func (f *fakeLendingRepo) MarkOverdue(_ context.Context, asOf time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, loan := range f.loans {
		if loan.Status == model.StatusActive && loan.DueDate.Before(asOf) {
			loan.Status = model.StatusOverdue
			count++
		}
	}
	return count, nil
}

func (f *fakeLendingRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	loan, ok := f.loans[id]
	if !ok {
		return nil, model.ErrLoanNotFound
	}
	return loan, nil
}

func (f *fakeLendingRepo) ListByMember(_ context.Context, memberID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var loans []model.Loan
	for _, loan := range f.loans {
		if loan.MemberID == memberID {
			loans = append(loans, *loan)
		}
	}
	return loans, int64(len(loans)), nil
}

func (f *fakeLendingRepo) List(_ context.Context, filter model.LoanFilter) ([]model.LoanDetail, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var loans []model.LoanDetail
	for _, loan := range f.loans {
		loans = append(loans, model.LoanDetail{Loan: *loan})
	}
	return loans, int64(len(loans)), nil
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

var (
	day1  = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	day15 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	day16 = time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)
	day20 = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
)

func TestCheckout(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()
	memberID := uuid.New()

	loan, err := svc.Checkout(librarianCtx(), bookID, memberID, day1)
	require.NoError(t, err)

	assert.Equal(t, model.StatusActive, loan.Status)
	assert.Equal(t, day1, loan.BorrowDate)
	assert.Equal(t, day1.Add(14*24*time.Hour), loan.DueDate)
	assert.Nil(t, loan.ReturnDate)
	assert.False(t, repo.books[bookID])
}

func TestCheckoutUnavailableBook(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	_, err := svc.Checkout(librarianCtx(), bookID, uuid.New(), day1)
	require.NoError(t, err)

	_, err = svc.Checkout(librarianCtx(), bookID, uuid.New(), day1)
	assert.ErrorIs(t, err, model.ErrBookUnavailable)
}

func TestCheckoutUnknownBook(t *testing.T) {
	svc := NewLendingService(newFakeLendingRepo(), 14)

	_, err := svc.Checkout(librarianCtx(), uuid.New(), uuid.New(), day1)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestCheckoutRequiresLibrarian(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	_, err := svc.Checkout(memberCtx(), bookID, uuid.New(), day1)
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)

	_, err = svc.Checkout(context.Background(), bookID, uuid.New(), day1)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	// The gate runs before any state changes.
	assert.True(t, repo.books[bookID])
}

// Two concurrent checkouts of the same book: exactly one wins.
func TestCheckoutConcurrent(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	const attempts = 10
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Checkout(librarianCtx(), bookID, uuid.New(), day1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, unavailable int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, model.ErrBookUnavailable)
			unavailable++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, unavailable)
}

func TestReturnReleasesBook(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	loan, err := svc.Checkout(librarianCtx(), bookID, uuid.New(), day1)
	require.NoError(t, err)

	returned, err := svc.ReturnBook(librarianCtx(), loan.ID, day15)
	require.NoError(t, err)

	assert.Equal(t, model.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, day15, *returned.ReturnDate)

	// The same copy can be borrowed again.
	_, err = svc.Checkout(librarianCtx(), bookID, uuid.New(), day16)
	assert.NoError(t, err)
}

func TestReturnTwice(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	loan, err := svc.Checkout(librarianCtx(), bookID, uuid.New(), day1)
	require.NoError(t, err)

	_, err = svc.ReturnBook(librarianCtx(), loan.ID, day15)
	require.NoError(t, err)

	_, err = svc.ReturnBook(librarianCtx(), loan.ID, day16)
	assert.ErrorIs(t, err, model.ErrLoanAlreadyReturned)
}

func TestReturnBeforeBorrowDate(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	loan, err := svc.Checkout(librarianCtx(), bookID, uuid.New(), day15)
	require.NoError(t, err)

	_, err = svc.ReturnBook(librarianCtx(), loan.ID, day1)
	assert.ErrorIs(t, err, model.ErrInvalidReturnDate)

	// The failed return must not release the book.
	assert.False(t, repo.books[bookID])
}

func TestReturnOverdueLoan(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()

	loan, err := svc.Checkout(librarianCtx(), bookID, uuid.New(), day1)
	require.NoError(t, err)

	// Past the 14-day due date of Jan 15.
	count, err := svc.SweepOverdue(librarianCtx(), day16)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	returned, err := svc.ReturnBook(librarianCtx(), loan.ID, day20)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReturned, returned.Status)
}

func TestSweepOverdue(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)

	dueBook := repo.addBook()
	freshBook := repo.addBook()

	overdueLoan, err := svc.Checkout(librarianCtx(), dueBook, uuid.New(), day1) // due Jan 15
	require.NoError(t, err)
	freshLoan, err := svc.Checkout(librarianCtx(), freshBook, uuid.New(), day15) // due Jan 29
	require.NoError(t, err)

	// Exactly at the due instant the loan is not yet overdue.
	count, err := svc.SweepOverdue(librarianCtx(), overdueLoan.DueDate)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = svc.SweepOverdue(librarianCtx(), day16)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := svc.GetLoan(librarianCtx(), overdueLoan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOverdue, got.Status)

	got, err = svc.GetLoan(librarianCtx(), freshLoan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, got.Status)

	// Re-running the sweep finds nothing new.
	count, err = svc.SweepOverdue(librarianCtx(), day16)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSweepRequiresLibrarian(t *testing.T) {
	svc := NewLendingService(newFakeLendingRepo(), 14)

	_, err := svc.SweepOverdue(memberCtx(), day16)
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)
}

func TestLoanHistoryVisibleToMembers(t *testing.T) {
	repo := newFakeLendingRepo()
	svc := NewLendingService(repo, 14)
	bookID := repo.addBook()
	memberID := uuid.New()

	_, err := svc.Checkout(librarianCtx(), bookID, memberID, day1)
	require.NoError(t, err)

	loans, total, err := svc.LoanHistory(memberCtx(), memberID, model.LoanFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, loans, 1)
}

func TestGetLoanNilID(t *testing.T) {
	svc := NewLendingService(newFakeLendingRepo(), 14)

	_, err := svc.GetLoan(librarianCtx(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrLoanNotFound)
}

func TestSanitizeFilter(t *testing.T) {
	tests := []struct {
		name string
		in   model.LoanFilter
		want model.LoanFilter
	}{
		{"defaults", model.LoanFilter{}, model.LoanFilter{Limit: 50}},
		{"capped", model.LoanFilter{Limit: 1000}, model.LoanFilter{Limit: 200}},
		{"negative offset", model.LoanFilter{Limit: 10, Offset: -5}, model.LoanFilter{Limit: 10}},
		{"unchanged", model.LoanFilter{Limit: 25, Offset: 75}, model.LoanFilter{Limit: 25, Offset: 75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sanitizeFilter(&tt.in)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}
