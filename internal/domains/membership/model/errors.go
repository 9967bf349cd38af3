package model

import (
	"errors"
	"net/http"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrDuplicateMemberCode  = errors.New("member with this code already exists")
	ErrDuplicateMemberEmail = errors.New("user with this email already exists")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		return "MEMBER_NOT_FOUND"
	case errors.Is(err, ErrDuplicateMemberCode):
		return "DUPLICATE_MEMBER_CODE"
	case errors.Is(err, ErrDuplicateMemberEmail):
		return "DUPLICATE_EMAIL"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateMemberCode), errors.Is(err, ErrDuplicateMemberEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
