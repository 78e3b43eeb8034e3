package request

import (
	"rental-pos/internal/usecase/commands"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	Room         string    `json:"room" binding:"required,max=50"`
	CustomerName string    `json:"customer_name" binding:"required,max=100"`
	ZoneKey      string    `json:"zone_key" binding:"required"`
	ItemID       uuid.UUID `json:"item_id" binding:"required"`
}

func (r *StartSessionRequest) ToInput() commands.StartSessionInput {
	return commands.StartSessionInput{
		Room:         r.Room,
		CustomerName: r.CustomerName,
		ZoneKey:      r.ZoneKey,
		ItemID:       r.ItemID,
	}
}

type OverrideRateRequest struct {
	RatePerHourCents int64 `json:"rate_per_hour_cents" binding:"min=0"`
}

type AddChargeRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

func (r *AddChargeRequest) ToInput() commands.AddChargeInput {
	return commands.AddChargeInput{ProductID: r.ProductID, Quantity: r.Quantity}
}

type UpdateSessionRequest struct {
	CustomerName  *string `json:"customer_name" binding:"omitempty,max=100"`
	Room          *string `json:"room" binding:"omitempty,max=50"`
	Note          *string `json:"note" binding:"omitempty,max=500"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=30"`
}

func (r *UpdateSessionRequest) ToInput() commands.UpdateDetailsInput {
	return commands.UpdateDetailsInput{
		CustomerName:  r.CustomerName,
		Room:          r.Room,
		Note:          r.Note,
		PaymentMethod: r.PaymentMethod,
	}
}
