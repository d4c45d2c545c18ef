package request

import (
	"time"

	"padel-club-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	CourtID       uuid.UUID  `json:"court_id" binding:"required"`
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerPhone string     `json:"customer_phone" binding:"required"`
	DayOfWeek     int        `json:"day_of_week" binding:"min=0,max=6"`
	StartTime     string     `json:"start_time" binding:"required"`
	DurationMin   int        `json:"duration_minutes" binding:"required,min=30"`
	PriceCents    int64      `json:"price_cents" binding:"min=0"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	IsPaid        bool       `json:"is_paid,omitempty"`
	ValidFrom     time.Time  `json:"valid_from" binding:"required"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

func (r CreateTemplateRequest) ToCommand() commands.CreateTemplateRequest {
	return commands.CreateTemplateRequest{
		CourtID:       r.CourtID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		DayOfWeek:     r.DayOfWeek,
		StartTime:     r.StartTime,
		DurationMin:   r.DurationMin,
		PriceCents:    r.PriceCents,
		PaymentMethod: r.PaymentMethod,
		IsPaid:        r.IsPaid,
		ValidFrom:     r.ValidFrom,
		ValidTo:       r.ValidTo,
		Notes:         r.Notes,
	}
}
