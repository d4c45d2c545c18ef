package recurring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"padel-club-api/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday   = errors.New("day of week must be between 0 and 6")
	ErrInvalidStartTime = errors.New("start time must be HH:MM")
	ErrInvalidDuration  = errors.New("duration must be a positive multiple of 30 minutes")
	ErrInvalidValidity  = errors.New("validTo must not be before validFrom")
)

// Template is a fixed weekly reservation: every week on dayOfWeek at the
// club-local startTime, for durationMinutes. The expander materializes it
// into concrete bookings; templates themselves never occupy slots.
type Template struct {
	id              uuid.UUID
	courtID         uuid.UUID
	customer        booking.Customer
	dayOfWeek       time.Weekday
	startTime       string // "HH:MM", club-local
	durationMinutes int
	priceCents      int64
	paymentMethod   booking.PaymentMethod
	isPaid          bool
	isActive        bool
	validFrom       time.Time
	validTo         *time.Time
	notes           string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewTemplate(
	courtID uuid.UUID,
	customer booking.Customer,
	dayOfWeek int,
	startTime string,
	durationMinutes int,
	priceCents int64,
	paymentMethod booking.PaymentMethod,
	isPaid bool,
	validFrom time.Time,
	validTo *time.Time,
	notes string,
) (*Template, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidWeekday
	}
	if _, _, err := parseHHMM(startTime); err != nil {
		return nil, err
	}
	if durationMinutes <= 0 || durationMinutes%30 != 0 {
		return nil, ErrInvalidDuration
	}
	if priceCents < 0 {
		return nil, booking.ErrNegativePrice
	}
	if validTo != nil && validTo.Before(validFrom) {
		return nil, ErrInvalidValidity
	}

	return &Template{
		id:              uuid.New(),
		courtID:         courtID,
		customer:        customer,
		dayOfWeek:       time.Weekday(dayOfWeek),
		startTime:       startTime,
		durationMinutes: durationMinutes,
		priceCents:      priceCents,
		paymentMethod:   paymentMethod,
		isPaid:          isPaid,
		isActive:        true,
		validFrom:       validFrom,
		validTo:         validTo,
		notes:           notes,
	}, nil
}

func Reconstruct(
	id, courtID uuid.UUID,
	customer booking.Customer,
	dayOfWeek int,
	startTime string,
	durationMinutes int,
	priceCents int64,
	paymentMethod booking.PaymentMethod,
	isPaid, isActive bool,
	validFrom time.Time,
	validTo *time.Time,
	notes string,
	createdAt, updatedAt time.Time,
) *Template {
	return &Template{
		id:              id,
		courtID:         courtID,
		customer:        customer,
		dayOfWeek:       time.Weekday(dayOfWeek),
		startTime:       startTime,
		durationMinutes: durationMinutes,
		priceCents:      priceCents,
		paymentMethod:   paymentMethod,
		isPaid:          isPaid,
		isActive:        isActive,
		validFrom:       validFrom,
		validTo:         validTo,
		notes:           notes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// AppliesOn reports whether the template should produce a booking on the
// given club-local calendar date.
func (t *Template) AppliesOn(year int, month time.Month, day int, loc *time.Location) bool {
	if !t.isActive {
		return false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Weekday() != t.dayOfWeek {
		return false
	}
	if date.Before(startOfDay(t.validFrom, loc)) {
		return false
	}
	if t.validTo != nil && date.After(startOfDay(*t.validTo, loc)) {
		return false
	}
	return true
}

// OccurrenceOn resolves the template's club-local start time on a calendar
// date into the UTC half-open slot it occupies.
func (t *Template) OccurrenceOn(year int, month time.Month, day int, loc *time.Location) (booking.TimeSlot, error) {
	h, m, err := parseHHMM(t.startTime)
	if err != nil {
		return booking.TimeSlot{}, err
	}
	start := time.Date(year, month, day, h, m, 0, 0, loc).UTC()
	end := start.Add(time.Duration(t.durationMinutes) * time.Minute)
	return booking.NewTimeSlot(start, end)
}

func (t *Template) Deactivate() {
	t.isActive = false
}

func startOfDay(ts time.Time, loc *time.Location) time.Time {
	y, m, d := ts.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func parseHHMM(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
	}
	return h, m, nil
}

func (t *Template) ID() uuid.UUID                        { return t.id }
func (t *Template) CourtID() uuid.UUID                   { return t.courtID }
func (t *Template) Customer() booking.Customer           { return t.customer }
func (t *Template) DayOfWeek() time.Weekday              { return t.dayOfWeek }
func (t *Template) StartTime() string                    { return t.startTime }
func (t *Template) DurationMinutes() int                 { return t.durationMinutes }
func (t *Template) PriceCents() int64                    { return t.priceCents }
func (t *Template) PaymentMethod() booking.PaymentMethod { return t.paymentMethod }
func (t *Template) IsPaid() bool                         { return t.isPaid }
func (t *Template) IsActive() bool                       { return t.isActive }
func (t *Template) ValidFrom() time.Time                 { return t.validFrom }
func (t *Template) ValidTo() *time.Time                  { return t.validTo }
func (t *Template) Notes() string                        { return t.notes }
func (t *Template) CreatedAt() time.Time                 { return t.createdAt }
func (t *Template) UpdatedAt() time.Time                 { return t.updatedAt }
