package model

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats are the five dashboard counters.
type DashboardStats struct {
	TotalBooks     int64 `json:"total_books"`
	AvailableBooks int64 `json:"available_books"`
	TotalMembers   int64 `json:"total_members"`
	ActiveLoans    int64 `json:"active_loans"`
	OverdueLoans   int64 `json:"overdue_loans"`
}

// OpenLoan is a row of the recent-activity listing: an Active or Overdue
// loan joined with its book title and member name, ordered by due date.
type OpenLoan struct {
	LoanID     uuid.UUID `json:"loan_id"`
	BookTitle  string    `json:"book_title"`
	MemberName string    `json:"member_name"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
}
