package court

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("court name cannot be empty")
	ErrNegativePrice   = errors.New("price per hour cannot be negative")
	ErrInvalidDuration = errors.New("duration must be positive")
)

type Court struct {
	id           uuid.UUID
	name         string
	courtType    string
	pricePerHour int64 // cents
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewCourt(id uuid.UUID, name, courtType string, pricePerHourCents int64, isActive bool) (*Court, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if pricePerHourCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Court{
		id:           id,
		name:         name,
		courtType:    courtType,
		pricePerHour: pricePerHourCents,
		isActive:     isActive,
	}, nil
}

func Reconstruct(id uuid.UUID, name, courtType string, pricePerHourCents int64, isActive bool, createdAt, updatedAt time.Time) *Court {
	return &Court{
		id:           id,
		name:         name,
		courtType:    courtType,
		pricePerHour: pricePerHourCents,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// PriceFor prorates the hourly rate over the booked duration.
func (c *Court) PriceFor(d time.Duration) (int64, error) {
	if d <= 0 {
		return 0, ErrInvalidDuration
	}
	return int64(d.Hours() * float64(c.pricePerHour)), nil
}

func (c *Court) ID() uuid.UUID            { return c.id }
func (c *Court) Name() string             { return c.name }
func (c *Court) CourtType() string        { return c.courtType }
func (c *Court) PricePerHourCents() int64 { return c.pricePerHour }
func (c *Court) IsActive() bool           { return c.isActive }
func (c *Court) CreatedAt() time.Time     { return c.createdAt }
func (c *Court) UpdatedAt() time.Time     { return c.updatedAt }
