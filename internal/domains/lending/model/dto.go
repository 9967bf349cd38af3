package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CheckoutRequest struct {
	BookID   uuid.UUID `json:"book_id"`
	MemberID uuid.UUID `json:"member_id"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.By(requiredUUID("book_id"))),
		validation.Field(&r.MemberID, validation.By(requiredUUID("member_id"))),
	)
}

func requiredUUID(field string) validation.RuleFunc {
	return func(value interface{}) error {
		if id, _ := value.(uuid.UUID); id == uuid.Nil {
			return validation.NewError("validation_required", field+" is required")
		}
		return nil
	}
}

// OverdueSweepPayload is the asynq task payload for the periodic sweep.
// Empty today; a payload type keeps the task wire format extensible.
type OverdueSweepPayload struct{}
