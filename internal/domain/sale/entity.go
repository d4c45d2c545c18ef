package sale

import (
	"errors"
	"time"

	"padel-club-api/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrNoItems         = errors.New("sale must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrNegativePrice   = errors.New("item unit price cannot be negative")
)

// Item is a single sale line. unitPriceCents is the price captured at
// sale time, independent of later product price changes.
type Item struct {
	productID      uuid.UUID
	quantity       int
	unitPriceCents int64
}

func NewItem(productID uuid.UUID, quantity int, unitPriceCents int64) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return Item{}, ErrNegativePrice
	}
	return Item{productID: productID, quantity: quantity, unitPriceCents: unitPriceCents}, nil
}

func ReconstructItem(productID uuid.UUID, quantity int, unitPriceCents int64) Item {
	return Item{productID: productID, quantity: quantity, unitPriceCents: unitPriceCents}
}

func (i Item) ProductID() uuid.UUID  { return i.productID }
func (i Item) Quantity() int         { return i.quantity }
func (i Item) UnitPriceCents() int64 { return i.unitPriceCents }
func (i Item) SubtotalCents() int64  { return int64(i.quantity) * i.unitPriceCents }

// Sale is a completed point-of-sale transaction. externalPaymentID is set
// for provider-funded sales and acts as the idempotency key.
type Sale struct {
	id                uuid.UUID
	items             []Item
	totalCents        int64
	paymentMethod     booking.PaymentMethod
	externalPaymentID *string
	createdAt         time.Time
}

func NewSale(items []Item, paymentMethod booking.PaymentMethod, externalPaymentID *string) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	var total int64
	for _, it := range items {
		total += it.SubtotalCents()
	}
	return &Sale{
		id:                uuid.New(),
		items:             items,
		totalCents:        total,
		paymentMethod:     paymentMethod,
		externalPaymentID: externalPaymentID,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	items []Item,
	totalCents int64,
	paymentMethod booking.PaymentMethod,
	externalPaymentID *string,
	createdAt time.Time,
) *Sale {
	return &Sale{
		id:                id,
		items:             items,
		totalCents:        totalCents,
		paymentMethod:     paymentMethod,
		externalPaymentID: externalPaymentID,
		createdAt:         createdAt,
	}
}

func (s *Sale) ID() uuid.UUID                        { return s.id }
func (s *Sale) Items() []Item                        { return s.items }
func (s *Sale) TotalCents() int64                    { return s.totalCents }
func (s *Sale) PaymentMethod() booking.PaymentMethod { return s.paymentMethod }
func (s *Sale) ExternalPaymentID() *string           { return s.externalPaymentID }
func (s *Sale) CreatedAt() time.Time                 { return s.createdAt }
