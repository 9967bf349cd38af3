package model

import (
	"time"

	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookClub groups members. The roster is a many-to-many table; listings
// report the roster size, computed on read.
type BookClub struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	MemberCount int `json:"member_count" db:"-"`
}

type CreateClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateClubRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

type AddClubMemberRequest struct {
	MemberID uuid.UUID `json:"member_id"`
}

func (r AddClubMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MemberID, validation.By(func(value interface{}) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("validation_required", "member_id is required")
			}
			return nil
		})),
	)
}
