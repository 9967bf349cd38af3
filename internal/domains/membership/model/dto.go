package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CreateMemberRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	MemberCode string `json:"member_code"`
	Contact    string `json:"contact"`
}

func (r CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.MemberCode,
			validation.Required.Error("member_code is required"),
			validation.Length(1, 64),
		),
		validation.Field(&r.Contact,
			validation.Length(0, 255),
		),
	)
}
