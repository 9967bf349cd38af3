package model

import (
	"time"

	"github.com/google/uuid"
)

// Member links a person identity (users row) to a library membership.
// ActiveLoanCount is computed at read time from the loans table, never
// stored.
type Member struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Name       string    `json:"name" db:"-"`
	Email      string    `json:"email" db:"-"`
	MemberCode string    `json:"member_code" db:"member_code"`
	Contact    string    `json:"contact" db:"contact"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	ActiveLoanCount int `json:"active_loan_count" db:"-"`
}

type MemberFilter struct {
	Limit  int
	Offset int
}
