package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. Available is a denormalized flag: it is true iff
// no loan on the book is currently open. The lending repository flips it
// inside the same transaction that creates or closes a loan, which is what
// keeps the flag consistent under concurrent checkouts.
type Book struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	ISBN       string    `json:"isbn" db:"isbn"`
	Genre      string    `json:"genre" db:"genre"`
	AuthorID   uuid.UUID `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name,omitempty" db:"-"`
	Available  bool      `json:"available" db:"available"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BookFilter drives the paginated catalog search.
type BookFilter struct {
	// Search matches case-insensitively against title, ISBN and author
	// name as a substring. Empty returns the whole catalog.
	Search string
	Limit  int
	Offset int
}
