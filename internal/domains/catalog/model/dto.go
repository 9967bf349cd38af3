package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateBookRequest struct {
	Title    string    `json:"title"`
	ISBN     string    `json:"isbn"`
	Genre    string    `json:"genre"`
	AuthorID uuid.UUID `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Length(1, 32),
		),
		validation.Field(&r.Genre,
			validation.Length(0, 100),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author_id is required"),
			validation.By(func(value interface{}) error {
				if id, _ := value.(uuid.UUID); id == uuid.Nil {
					return validation.NewError("validation_required", "author_id is required")
				}
				return nil
			}),
		),
	)
}

type CreateAuthorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}
