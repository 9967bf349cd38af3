package model

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrDuplicateISBN  = errors.New("book with this ISBN already exists")

	// Referential-integrity blocks on delete. Loan rows are the permanent
	// audit trail, so a book with any loan history cannot be removed.
	ErrBookHasLoans   = errors.New("cannot delete book with loan history")
	ErrAuthorHasBooks = errors.New("cannot delete author with linked books")
)

// ToErrorCode converts an error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrDuplicateISBN):
		return "DUPLICATE_ISBN"
	case errors.Is(err, ErrBookHasLoans):
		return "BOOK_HAS_LOANS"
	case errors.Is(err, ErrAuthorHasBooks):
		return "AUTHOR_HAS_BOOKS"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts an error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateISBN),
		errors.Is(err, ErrBookHasLoans),
		errors.Is(err, ErrAuthorHasBooks):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
