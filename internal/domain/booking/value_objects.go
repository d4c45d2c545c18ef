package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

// SlotDuration is the atomic scheduling granularity.
const SlotDuration = 30 * time.Minute

var (
	ErrInvalidTimeSlot = errors.New("start time must be before end time")
	ErrUnalignedSlot   = errors.New("time slot must align to the 30-minute grid")
	ErrEmptyName       = errors.New("customer name must have at least 2 characters")
	ErrInvalidPhone    = errors.New("customer phone is not a valid number")
	ErrNegativePrice   = errors.New("price cannot be negative")
)

// TimeSlot is a half-open [start, end) interval in UTC.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	if !alignedToGrid(start) || !alignedToGrid(end) {
		return TimeSlot{}, ErrUnalignedSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func alignedToGrid(t time.Time) bool {
	return t.Truncate(SlotDuration).Equal(t)
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps implements the half-open interval test: touching endpoints do not
// conflict.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return other.start.Before(ts.end) && other.end.After(ts.start)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// phoneRegion is the default region for numbers given without a country code.
const phoneRegion = "AR"

type Customer struct {
	name  string
	phone string
}

func NewCustomer(name, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return Customer{}, ErrEmptyName
	}

	num, err := phonenumbers.Parse(strings.TrimSpace(phone), phoneRegion)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return Customer{}, ErrInvalidPhone
	}

	return Customer{
		name:  name,
		phone: phonenumbers.Format(num, phonenumbers.E164),
	}, nil
}

// ReconstructCustomer restores a customer from storage without re-validating.
func ReconstructCustomer(name, phone string) Customer {
	return Customer{name: name, phone: phone}
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Phone() string { return c.phone }

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}
