package model

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrLoanNotFound   = errors.New("loan not found")

	// ErrBookUnavailable means another open loan already holds the book.
	// Expected under concurrent checkouts; the caller refreshes and moves on.
	ErrBookUnavailable = errors.New("book is not available for checkout")

	// ErrLoanAlreadyReturned guards the terminal state: returning a
	// Returned loan is an illegal transition, not a silent no-op.
	ErrLoanAlreadyReturned = errors.New("loan has already been returned")

	ErrInvalidReturnDate = errors.New("return date precedes borrow date")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrMemberNotFound):
		return "MEMBER_NOT_FOUND"
	case errors.Is(err, ErrLoanNotFound):
		return "LOAN_NOT_FOUND"
	case errors.Is(err, ErrBookUnavailable):
		return "BOOK_UNAVAILABLE"
	case errors.Is(err, ErrLoanAlreadyReturned):
		return "LOAN_ALREADY_RETURNED"
	case errors.Is(err, ErrInvalidReturnDate):
		return "INVALID_RETURN_DATE"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBookUnavailable), errors.Is(err, ErrLoanAlreadyReturned):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidReturnDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
