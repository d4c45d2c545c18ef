package request

import (
	"time"

	"padel-club-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type SlotRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

type CreateBookingsRequest struct {
	CourtID       uuid.UUID     `json:"court_id" binding:"required"`
	CustomerName  string        `json:"customer_name" binding:"required"`
	CustomerPhone string        `json:"customer_phone" binding:"required"`
	Slots         []SlotRequest `json:"slots" binding:"required,min=1"`
	PriceCents    *int64        `json:"price_cents,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	IsPaid        bool          `json:"is_paid,omitempty"`
}

func (r CreateBookingsRequest) ToCommand() commands.CreateBookingsRequest {
	slots := make([]commands.SlotRequest, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, commands.SlotRequest{Start: s.Start, End: s.End})
	}
	return commands.CreateBookingsRequest{
		CourtID:       r.CourtID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Slots:         slots,
		PriceCents:    r.PriceCents,
		PaymentMethod: r.PaymentMethod,
		IsPaid:        r.IsPaid,
	}
}
