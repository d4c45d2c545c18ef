package shared

import (
	"context"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/domain/recurring"
	"padel-club-api/internal/domain/sale"
	"padel-club-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: serializable transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Sales() SaleRepository
	Products() ProductRepository
	PendingPayments() PendingPaymentRepository
	PendingSales() PendingSaleRepository
	Cashbox() CashboxRepository
	Templates() TemplateRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*CourtSnapshot, error)
	ActiveCourts(ctx context.Context) ([]CourtSnapshot, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BlockingBookings returns pending/confirmed bookings on the court whose
	// half-open interval overlaps [start, end).
	BlockingBookings(ctx context.Context, courtID uuid.UUID, start, end time.Time) ([]BookingSnapshot, error)
	BookingByExternalPaymentID(ctx context.Context, paymentID string) (*BookingSnapshot, error)
	SaleByExternalPaymentID(ctx context.Context, paymentID string) (*SaleSnapshot, error)
	PendingPaymentByReference(ctx context.Context, referenceID string) (*PendingPaymentSnapshot, error)
	PendingSaleByReference(ctx context.Context, referenceID string) (*PendingSaleSnapshot, error)
	OpenCashboxSession(ctx context.Context) (*cashbox.Session, error)
	// CashTotals sums cash income and manual movements for an open session's
	// window [since, until).
	CashTotals(ctx context.Context, sessionID uuid.UUID, since, until time.Time) (*CashTotals, error)
	TemplateByID(ctx context.Context, id uuid.UUID) (*recurring.Template, error)
	ActiveTemplates(ctx context.Context) ([]*recurring.Template, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdatePayment(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
}

type SaleRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *sale.Sale) (uuid.UUID, error)
}

type ProductRepository interface {
	// DecrementStock conditionally subtracts quantity and reports how many
	// rows matched; zero means insufficient stock.
	DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int) (int64, error)
}

type PendingPaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *PendingPaymentSnapshot) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	DeleteExpired(ctx context.Context, tx db.DBTX, before time.Time) (int64, error)
}

type PendingSaleRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *PendingSaleSnapshot) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	DeleteExpired(ctx context.Context, tx db.DBTX, before time.Time) (int64, error)
}

type CashboxRepository interface {
	CreateSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) error
	CloseSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) error
	CreateMovement(ctx context.Context, tx db.DBTX, m *cashbox.Movement) error
}

type TemplateRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *recurring.Template) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, t *recurring.Template) error
	Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
