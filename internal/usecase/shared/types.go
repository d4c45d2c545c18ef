package shared

import (
	"time"

	"github.com/google/uuid"
)

type CourtSnapshot struct {
	ID                uuid.UUID
	Name              string
	CourtType         string
	PricePerHourCents int64
	IsActive          bool
}

type ProductSnapshot struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	Stock      int
	IsActive   bool
}

type BookingSnapshot struct {
	ID                uuid.UUID
	CourtID           uuid.UUID
	CustomerName      string
	CustomerPhone     string
	StartTime         time.Time
	EndTime           time.Time
	PriceCents        int64
	Status            string
	IsPaid            bool
	PaidAt            *time.Time
	PaymentMethod     string
	ExternalPaymentID *string
}

type SaleSnapshot struct {
	ID                uuid.UUID
	TotalCents        int64
	PaymentMethod     string
	ExternalPaymentID *string
	CreatedAt         time.Time
}

// PendingSlot is one half-open UTC interval a pending payment will
// materialize into a booking on approval.
type PendingSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type PendingPaymentSnapshot struct {
	ID            uuid.UUID
	ReferenceID   string
	CourtID       uuid.UUID
	CustomerName  string
	CustomerPhone string
	Slots         []PendingSlot
	TotalCents    int64
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

type PendingSaleItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type PendingSaleSnapshot struct {
	ID          uuid.UUID
	ReferenceID string
	Items       []PendingSaleItem
	TotalCents  int64
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// CashTotals aggregates cash flows inside a session window, used once at
// close to freeze the summary.
type CashTotals struct {
	CashSalesCents    int64
	CashBookingsCents int64
	MovementsInCents  int64
	MovementsOutCents int64
}
