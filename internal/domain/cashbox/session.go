package cashbox

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount = errors.New("cash amount cannot be negative")
	ErrAlreadyClosed  = errors.New("cashbox session is already closed")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

// Movement is a manual cash adjustment within an open session, e.g. a
// change-fund top-up or a petty-cash withdrawal.
type Movement struct {
	id        uuid.UUID
	sessionID uuid.UUID
	kind      MovementType
	amount    int64
	concept   string
	createdAt time.Time
}

func NewMovement(sessionID uuid.UUID, kind MovementType, amountCents int64, concept string) (*Movement, error) {
	if !kind.IsValid() {
		return nil, errors.New("movement type must be in or out")
	}
	if amountCents <= 0 {
		return nil, ErrNegativeAmount
	}
	return &Movement{
		id:        uuid.New(),
		sessionID: sessionID,
		kind:      kind,
		amount:    amountCents,
		concept:   concept,
	}, nil
}

func ReconstructMovement(id, sessionID uuid.UUID, kind MovementType, amountCents int64, concept string, createdAt time.Time) *Movement {
	return &Movement{id: id, sessionID: sessionID, kind: kind, amount: amountCents, concept: concept, createdAt: createdAt}
}

func (m *Movement) ID() uuid.UUID        { return m.id }
func (m *Movement) SessionID() uuid.UUID { return m.sessionID }
func (m *Movement) Kind() MovementType   { return m.kind }
func (m *Movement) AmountCents() int64   { return m.amount }
func (m *Movement) Concept() string      { return m.concept }
func (m *Movement) CreatedAt() time.Time { return m.createdAt }

// Summary holds the cash accounting computed once at close and never
// recomputed afterwards.
type Summary struct {
	CashSalesCents    int64
	CashBookingsCents int64
	MovementsInCents  int64
	MovementsOutCents int64
	ExpectedCents     int64
	DifferenceCents   int64
}

// Session is a cash-drawer accounting window. At most one session is open
// at a time; the storage layer enforces that with a partial unique index.
type Session struct {
	id               uuid.UUID
	status           Status
	startAmountCents int64
	endAmountCents   *int64
	openedAt         time.Time
	closedAt         *time.Time
	notes            string
	summary          *Summary
}

func OpenSession(startAmountCents int64, openedAt time.Time) (*Session, error) {
	if startAmountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Session{
		id:               uuid.New(),
		status:           StatusOpen,
		startAmountCents: startAmountCents,
		openedAt:         openedAt,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	status Status,
	startAmountCents int64,
	endAmountCents *int64,
	openedAt time.Time,
	closedAt *time.Time,
	notes string,
	summary *Summary,
) *Session {
	return &Session{
		id:               id,
		status:           status,
		startAmountCents: startAmountCents,
		endAmountCents:   endAmountCents,
		openedAt:         openedAt,
		closedAt:         closedAt,
		notes:            notes,
		summary:          summary,
	}
}

// Close freezes the session: expected cash is the opening float plus cash
// income plus manual movements, and the difference is counted minus expected.
func (s *Session) Close(
	endAmountCents int64,
	notes string,
	cashSales, cashBookings, movementsIn, movementsOut int64,
	closedAt time.Time,
) error {
	if s.status == StatusClosed {
		return ErrAlreadyClosed
	}
	if endAmountCents < 0 {
		return ErrNegativeAmount
	}
	expected := s.startAmountCents + cashSales + cashBookings + movementsIn - movementsOut
	s.summary = &Summary{
		CashSalesCents:    cashSales,
		CashBookingsCents: cashBookings,
		MovementsInCents:  movementsIn,
		MovementsOutCents: movementsOut,
		ExpectedCents:     expected,
		DifferenceCents:   endAmountCents - expected,
	}
	s.endAmountCents = &endAmountCents
	s.closedAt = &closedAt
	s.notes = notes
	s.status = StatusClosed
	return nil
}

func (s *Session) ID() uuid.UUID           { return s.id }
func (s *Session) Status() Status          { return s.status }
func (s *Session) IsOpen() bool            { return s.status == StatusOpen }
func (s *Session) StartAmountCents() int64 { return s.startAmountCents }
func (s *Session) EndAmountCents() *int64  { return s.endAmountCents }
func (s *Session) OpenedAt() time.Time     { return s.openedAt }
func (s *Session) ClosedAt() *time.Time    { return s.closedAt }
func (s *Session) Notes() string           { return s.notes }
func (s *Session) Summary() *Summary       { return s.summary }
