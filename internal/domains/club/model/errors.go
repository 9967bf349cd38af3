package model

import (
	"errors"
	"net/http"
)

var (
	ErrClubNotFound      = errors.New("book club not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrDuplicateClubName = errors.New("book club with this name already exists")
	ErrAlreadyInClub     = errors.New("member is already in this club")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrClubNotFound):
		return "CLUB_NOT_FOUND"
	case errors.Is(err, ErrMemberNotFound):
		return "MEMBER_NOT_FOUND"
	case errors.Is(err, ErrDuplicateClubName):
		return "DUPLICATE_CLUB_NAME"
	case errors.Is(err, ErrAlreadyInClub):
		return "ALREADY_IN_CLUB"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrClubNotFound), errors.Is(err, ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateClubName), errors.Is(err, ErrAlreadyInClub):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
