package request

import (
	"strings"

	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// WebhookNotification is the provider's payment event payload. Field names
// follow the Mercado Pago webhook shape the club's checkout uses.
type WebhookNotification struct {
	PaymentID   string `json:"payment_id"`
	ReferenceID string `json:"external_reference"`
	Status      string `json:"status"`
	AmountCents int64  `json:"transaction_amount_cents"`
	Kind        string `json:"kind"`
}

func (r WebhookNotification) ToCommand() commands.PaymentNotification {
	kind := r.Kind
	if kind == "" {
		kind = commands.PaymentKindBooking
	}
	return commands.PaymentNotification{
		ExternalPaymentID: r.PaymentID,
		ReferenceID:       r.ReferenceID,
		Approved:          strings.EqualFold(r.Status, "approved"),
		AmountCents:       r.AmountCents,
		Kind:              kind,
	}
}

type CreatePendingPaymentRequest struct {
	ReferenceID   string        `json:"reference_id" binding:"required"`
	CourtID       uuid.UUID     `json:"court_id" binding:"required"`
	CustomerName  string        `json:"customer_name" binding:"required"`
	CustomerPhone string        `json:"customer_phone" binding:"required"`
	Slots         []SlotRequest `json:"slots" binding:"required,min=1"`
	TotalCents    int64         `json:"total_cents" binding:"required"`
}

func (r CreatePendingPaymentRequest) ToCommand() commands.CreatePendingPaymentRequest {
	slots := make([]commands.SlotRequest, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, commands.SlotRequest{Start: s.Start, End: s.End})
	}
	return commands.CreatePendingPaymentRequest{
		ReferenceID:   r.ReferenceID,
		CourtID:       r.CourtID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Slots:         slots,
		TotalCents:    r.TotalCents,
	}
}

type PendingSaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CreatePendingSaleRequest struct {
	ReferenceID string                   `json:"reference_id" binding:"required"`
	Items       []PendingSaleItemRequest `json:"items" binding:"required,min=1"`
}

func (r CreatePendingSaleRequest) ToCommand() commands.CreatePendingSaleRequest {
	items := make([]shared.PendingSaleItem, 0, len(r.Items))
	for _, it := range r.Items {
		// Unit prices are captured server-side from the product catalog.
		items = append(items, shared.PendingSaleItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return commands.CreatePendingSaleRequest{
		ReferenceID: r.ReferenceID,
		Items:       items,
	}
}
