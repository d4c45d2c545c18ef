// Package fake provides hand-rolled in-memory doubles for the unit-of-work
// ports, recording writes so command tests can assert on them.
package fake

import (
	"context"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/domain/recurring"
	"padel-club-api/internal/domain/sale"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type UoW struct {
	Tx *Tx
	// WithinErr short-circuits Within before the callback runs.
	WithinErr error
}

func NewUoW() *UoW {
	return &UoW{Tx: NewTx()}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.WithinErr != nil {
		return u.WithinErr
	}
	return fn(ctx, u.Tx)
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) CommandReads() shared.CommandReads {
	return u.Tx.ReadsFake
}

type Tx struct {
	ReadsFake           *Reads
	BookingsRepo        *BookingRepo
	SalesRepo           *SaleRepo
	ProductsRepo        *ProductRepo
	PendingPaymentsRepo *PendingPaymentRepo
	PendingSalesRepo    *PendingSaleRepo
	CashboxRepo         *CashboxRepo
	TemplatesRepo       *TemplateRepo
	NotificationsRepo   *NotificationRepo
}

func NewTx() *Tx {
	return &Tx{
		ReadsFake:           NewReads(),
		BookingsRepo:        &BookingRepo{},
		SalesRepo:           &SaleRepo{},
		ProductsRepo:        &ProductRepo{},
		PendingPaymentsRepo: &PendingPaymentRepo{},
		PendingSalesRepo:    &PendingSaleRepo{},
		CashboxRepo:         &CashboxRepo{},
		TemplatesRepo:       &TemplateRepo{},
		NotificationsRepo:   &NotificationRepo{},
	}
}

func (t *Tx) Bookings() shared.BookingRepository               { return t.BookingsRepo }
func (t *Tx) Sales() shared.SaleRepository                     { return t.SalesRepo }
func (t *Tx) Products() shared.ProductRepository               { return t.ProductsRepo }
func (t *Tx) PendingPayments() shared.PendingPaymentRepository { return t.PendingPaymentsRepo }
func (t *Tx) PendingSales() shared.PendingSaleRepository       { return t.PendingSalesRepo }
func (t *Tx) Cashbox() shared.CashboxRepository                { return t.CashboxRepo }
func (t *Tx) Templates() shared.TemplateRepository             { return t.TemplatesRepo }
func (t *Tx) Notifications() shared.NotificationRepository     { return t.NotificationsRepo }
func (t *Tx) Reads() shared.CommandReads                       { return t.ReadsFake }
func (t *Tx) DB() db.DBTX                                      { return nil }

// Reads dispatches to per-method function fields; unset fields answer
// not-found (or empty for list methods).
type Reads struct {
	CourtByIDFn                  func(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error)
	ActiveCourtsFn               func(ctx context.Context) ([]shared.CourtSnapshot, error)
	ProductByIDFn                func(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error)
	BookingByIDFn                func(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error)
	BlockingBookingsFn           func(ctx context.Context, courtID uuid.UUID, start, end time.Time) ([]shared.BookingSnapshot, error)
	BookingByExternalPaymentIDFn func(ctx context.Context, paymentID string) (*shared.BookingSnapshot, error)
	SaleByExternalPaymentIDFn    func(ctx context.Context, paymentID string) (*shared.SaleSnapshot, error)
	PendingPaymentByReferenceFn  func(ctx context.Context, referenceID string) (*shared.PendingPaymentSnapshot, error)
	PendingSaleByReferenceFn     func(ctx context.Context, referenceID string) (*shared.PendingSaleSnapshot, error)
	OpenCashboxSessionFn         func(ctx context.Context) (*cashbox.Session, error)
	CashTotalsFn                 func(ctx context.Context, sessionID uuid.UUID, since, until time.Time) (*shared.CashTotals, error)
	TemplateByIDFn               func(ctx context.Context, id uuid.UUID) (*recurring.Template, error)
	ActiveTemplatesFn            func(ctx context.Context) ([]*recurring.Template, error)
}

func NewReads() *Reads {
	return &Reads{}
}

func (r *Reads) CourtByID(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	if r.CourtByIDFn != nil {
		return r.CourtByIDFn(ctx, id)
	}
	return nil, notFound("court not found")
}

func (r *Reads) ActiveCourts(ctx context.Context) ([]shared.CourtSnapshot, error) {
	if r.ActiveCourtsFn != nil {
		return r.ActiveCourtsFn(ctx)
	}
	return nil, nil
}

func (r *Reads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	if r.ProductByIDFn != nil {
		return r.ProductByIDFn(ctx, id)
	}
	return nil, notFound("product not found")
}

func (r *Reads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if r.BookingByIDFn != nil {
		return r.BookingByIDFn(ctx, id)
	}
	return nil, notFound("booking not found")
}

func (r *Reads) BlockingBookings(ctx context.Context, courtID uuid.UUID, start, end time.Time) ([]shared.BookingSnapshot, error) {
	if r.BlockingBookingsFn != nil {
		return r.BlockingBookingsFn(ctx, courtID, start, end)
	}
	return nil, nil
}

func (r *Reads) BookingByExternalPaymentID(ctx context.Context, paymentID string) (*shared.BookingSnapshot, error) {
	if r.BookingByExternalPaymentIDFn != nil {
		return r.BookingByExternalPaymentIDFn(ctx, paymentID)
	}
	return nil, notFound("booking not found")
}

func (r *Reads) SaleByExternalPaymentID(ctx context.Context, paymentID string) (*shared.SaleSnapshot, error) {
	if r.SaleByExternalPaymentIDFn != nil {
		return r.SaleByExternalPaymentIDFn(ctx, paymentID)
	}
	return nil, notFound("sale not found")
}

func (r *Reads) PendingPaymentByReference(ctx context.Context, referenceID string) (*shared.PendingPaymentSnapshot, error) {
	if r.PendingPaymentByReferenceFn != nil {
		return r.PendingPaymentByReferenceFn(ctx, referenceID)
	}
	return nil, notFound("pending payment not found")
}

func (r *Reads) PendingSaleByReference(ctx context.Context, referenceID string) (*shared.PendingSaleSnapshot, error) {
	if r.PendingSaleByReferenceFn != nil {
		return r.PendingSaleByReferenceFn(ctx, referenceID)
	}
	return nil, notFound("pending sale not found")
}

func (r *Reads) OpenCashboxSession(ctx context.Context) (*cashbox.Session, error) {
	if r.OpenCashboxSessionFn != nil {
		return r.OpenCashboxSessionFn(ctx)
	}
	return nil, notFound("no open cashbox session")
}

func (r *Reads) CashTotals(ctx context.Context, sessionID uuid.UUID, since, until time.Time) (*shared.CashTotals, error) {
	if r.CashTotalsFn != nil {
		return r.CashTotalsFn(ctx, sessionID, since, until)
	}
	return &shared.CashTotals{}, nil
}

func (r *Reads) TemplateByID(ctx context.Context, id uuid.UUID) (*recurring.Template, error) {
	if r.TemplateByIDFn != nil {
		return r.TemplateByIDFn(ctx, id)
	}
	return nil, notFound("recurring booking not found")
}

func (r *Reads) ActiveTemplates(ctx context.Context) ([]*recurring.Template, error) {
	if r.ActiveTemplatesFn != nil {
		return r.ActiveTemplatesFn(ctx)
	}
	return nil, nil
}

type BookingRepo struct {
	Created        []*booking.Booking
	CreateErr      error
	UpdatedPayment []*booking.Booking
	StatusUpdates  map[uuid.UUID]booking.Status
}

func (r *BookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	if r.CreateErr != nil {
		return uuid.Nil, r.CreateErr
	}
	r.Created = append(r.Created, b)
	return b.ID(), nil
}

func (r *BookingRepo) UpdatePayment(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.UpdatedPayment = append(r.UpdatedPayment, b)
	return nil
}

func (r *BookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status) error {
	if r.StatusUpdates == nil {
		r.StatusUpdates = make(map[uuid.UUID]booking.Status)
	}
	r.StatusUpdates[id] = status
	return nil
}

type SaleRepo struct {
	Created   []*sale.Sale
	CreateErr error
}

func (r *SaleRepo) Create(_ context.Context, _ db.DBTX, s *sale.Sale) (uuid.UUID, error) {
	if r.CreateErr != nil {
		return uuid.Nil, r.CreateErr
	}
	r.Created = append(r.Created, s)
	return s.ID(), nil
}

type ProductRepo struct {
	// DecrementFn defaults to success (one row matched).
	DecrementFn func(productID uuid.UUID, quantity int) (int64, error)
	Decremented map[uuid.UUID]int
}

func (r *ProductRepo) DecrementStock(_ context.Context, _ db.DBTX, productID uuid.UUID, quantity int) (int64, error) {
	if r.Decremented == nil {
		r.Decremented = make(map[uuid.UUID]int)
	}
	if r.DecrementFn != nil {
		n, err := r.DecrementFn(productID, quantity)
		if err == nil && n > 0 {
			r.Decremented[productID] += quantity
		}
		return n, err
	}
	r.Decremented[productID] += quantity
	return 1, nil
}

type PendingPaymentRepo struct {
	Created      []*shared.PendingPaymentSnapshot
	Deleted      []uuid.UUID
	ExpiredCount int64
}

func (r *PendingPaymentRepo) Create(_ context.Context, _ db.DBTX, p *shared.PendingPaymentSnapshot) error {
	r.Created = append(r.Created, p)
	return nil
}

func (r *PendingPaymentRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	r.Deleted = append(r.Deleted, id)
	return nil
}

func (r *PendingPaymentRepo) DeleteExpired(_ context.Context, _ db.DBTX, _ time.Time) (int64, error) {
	return r.ExpiredCount, nil
}

type PendingSaleRepo struct {
	Created      []*shared.PendingSaleSnapshot
	Deleted      []uuid.UUID
	ExpiredCount int64
}

func (r *PendingSaleRepo) Create(_ context.Context, _ db.DBTX, p *shared.PendingSaleSnapshot) error {
	r.Created = append(r.Created, p)
	return nil
}

func (r *PendingSaleRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	r.Deleted = append(r.Deleted, id)
	return nil
}

func (r *PendingSaleRepo) DeleteExpired(_ context.Context, _ db.DBTX, _ time.Time) (int64, error) {
	return r.ExpiredCount, nil
}

type CashboxRepo struct {
	Sessions         []*cashbox.Session
	CreateSessionErr error
	Closed           []*cashbox.Session
	Movements        []*cashbox.Movement
}

func (r *CashboxRepo) CreateSession(_ context.Context, _ db.DBTX, s *cashbox.Session) error {
	if r.CreateSessionErr != nil {
		return r.CreateSessionErr
	}
	r.Sessions = append(r.Sessions, s)
	return nil
}

func (r *CashboxRepo) CloseSession(_ context.Context, _ db.DBTX, s *cashbox.Session) error {
	r.Closed = append(r.Closed, s)
	return nil
}

func (r *CashboxRepo) CreateMovement(_ context.Context, _ db.DBTX, m *cashbox.Movement) error {
	r.Movements = append(r.Movements, m)
	return nil
}

type TemplateRepo struct {
	Created     []*recurring.Template
	Updated     []*recurring.Template
	Deactivated []uuid.UUID
}

func (r *TemplateRepo) Create(_ context.Context, _ db.DBTX, t *recurring.Template) (uuid.UUID, error) {
	r.Created = append(r.Created, t)
	return t.ID(), nil
}

func (r *TemplateRepo) Update(_ context.Context, _ db.DBTX, t *recurring.Template) error {
	r.Updated = append(r.Updated, t)
	return nil
}

func (r *TemplateRepo) Deactivate(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	r.Deactivated = append(r.Deactivated, id)
	return nil
}

type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type NotificationRepo struct {
	Jobs []NotificationJob
}

func (r *NotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.Jobs = append(r.Jobs, NotificationJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}
