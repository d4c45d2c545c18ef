package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyProductName = errors.New("product name cannot be empty")
	ErrNegativeStock    = errors.New("stock cannot be negative")
)

// Product is a POS inventory line. Stock mutation happens in the storage
// layer inside the sale transaction; the entity only validates construction.
type Product struct {
	id         uuid.UUID
	name       string
	priceCents int64
	stock      int
	isActive   bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewProduct(name string, priceCents int64, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	return &Product{
		id:         uuid.New(),
		name:       name,
		priceCents: priceCents,
		stock:      stock,
		isActive:   true,
	}, nil
}

func ReconstructProduct(id uuid.UUID, name string, priceCents int64, stock int, isActive bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:         id,
		name:       name,
		priceCents: priceCents,
		stock:      stock,
		isActive:   isActive,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) PriceCents() int64    { return p.priceCents }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
