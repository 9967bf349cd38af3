package model

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the loan state machine:
//
//	Active -> Overdue   (time-triggered by the overdue sweep)
//	Active -> Returned  (return action)
//	Overdue -> Returned (return action)
//
// Returned is terminal. Loans are never deleted; they are the permanent
// audit trail.
type LoanStatus string

const (
	StatusActive   LoanStatus = "Active"
	StatusOverdue  LoanStatus = "Overdue"
	StatusReturned LoanStatus = "Returned"
)

// Open reports whether the loan still holds the book.
func (s LoanStatus) Open() bool {
	return s == StatusActive || s == StatusOverdue
}

type Loan struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	MemberID   uuid.UUID  `json:"member_id" db:"member_id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" db:"return_date"`
	Status     LoanStatus `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// OverdueAsOf reports whether an open loan's due date has passed. The
// comparison is strict: a loan due today is not yet overdue.
func (l *Loan) OverdueAsOf(asOf time.Time) bool {
	return l.Status.Open() && l.DueDate.Before(asOf)
}

// LoanDetail is a loan joined with its book title and member name, used by
// the ledger and dashboard listings.
type LoanDetail struct {
	Loan
	BookTitle  string `json:"book_title" db:"-"`
	MemberName string `json:"member_name" db:"-"`
}

type LoanFilter struct {
	Limit  int
	Offset int
}
