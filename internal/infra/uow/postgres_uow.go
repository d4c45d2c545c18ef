package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/domain/recurring"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/infra/readstore"
	"padel-club-api/internal/infra/repository"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// Serializable: overlap checks and conditional writes in the same
// transaction must observe a consistent snapshot; conflicting commits fail
// with 40001 and are retried here.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo        shared.BookingRepository
	saleRepo           shared.SaleRepository
	productRepo        shared.ProductRepository
	pendingPaymentRepo shared.PendingPaymentRepository
	pendingSaleRepo    shared.PendingSaleRepository
	cashboxRepo        shared.CashboxRepository
	templateRepo       shared.TemplateRepository
	notificationRepo   shared.NotificationRepository
	commandReads       shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Sales() shared.SaleRepository {
	if t.saleRepo == nil {
		t.saleRepo = repository.NewSaleRepository(t.dbtx)
	}
	return t.saleRepo
}

func (t *pgTx) Products() shared.ProductRepository {
	if t.productRepo == nil {
		t.productRepo = repository.NewProductRepository(t.dbtx)
	}
	return t.productRepo
}

func (t *pgTx) PendingPayments() shared.PendingPaymentRepository {
	if t.pendingPaymentRepo == nil {
		t.pendingPaymentRepo = repository.NewPendingPaymentRepository(t.dbtx)
	}
	return t.pendingPaymentRepo
}

func (t *pgTx) PendingSales() shared.PendingSaleRepository {
	if t.pendingSaleRepo == nil {
		t.pendingSaleRepo = repository.NewPendingSaleRepository(t.dbtx)
	}
	return t.pendingSaleRepo
}

func (t *pgTx) Cashbox() shared.CashboxRepository {
	if t.cashboxRepo == nil {
		t.cashboxRepo = repository.NewCashboxRepository(t.dbtx)
	}
	return t.cashboxRepo
}

func (t *pgTx) Templates() shared.TemplateRepository {
	if t.templateRepo == nil {
		t.templateRepo = repository.NewTemplateRepository(t.dbtx)
	}
	return t.templateRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	courtStore    *readstore.CourtReadStore
	bookingStore  *readstore.BookingReadStore
	saleStore     *readstore.SaleReadStore
	pendingStore  *readstore.PendingReadStore
	cashboxStore  *readstore.CashboxReadStore
	templateStore *readstore.TemplateReadStore
}

func (r *commandReads) courts() *readstore.CourtReadStore {
	if r.courtStore == nil {
		r.courtStore = readstore.NewCourtReadStore(r.dbtx)
	}
	return r.courtStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) sales() *readstore.SaleReadStore {
	if r.saleStore == nil {
		r.saleStore = readstore.NewSaleReadStore(r.dbtx)
	}
	return r.saleStore
}

func (r *commandReads) pending() *readstore.PendingReadStore {
	if r.pendingStore == nil {
		r.pendingStore = readstore.NewPendingReadStore(r.dbtx)
	}
	return r.pendingStore
}

func (r *commandReads) cashbox() *readstore.CashboxReadStore {
	if r.cashboxStore == nil {
		r.cashboxStore = readstore.NewCashboxReadStore(r.dbtx)
	}
	return r.cashboxStore
}

func (r *commandReads) templates() *readstore.TemplateReadStore {
	if r.templateStore == nil {
		r.templateStore = readstore.NewTemplateReadStore(r.dbtx)
	}
	return r.templateStore
}

func (r *commandReads) CourtByID(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	return r.courts().FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) ActiveCourts(ctx context.Context) ([]shared.CourtSnapshot, error) {
	return r.courts().FindActive(ctx, r.dbtx)
}

func (r *commandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	return r.sales().FindProductByID(ctx, r.dbtx, id)
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookings().FindSnapshotByID(ctx, r.dbtx, id)
}

func (r *commandReads) BlockingBookings(ctx context.Context, courtID uuid.UUID, start, end time.Time) ([]shared.BookingSnapshot, error) {
	return r.bookings().FindBlockingOnCourt(ctx, r.dbtx, courtID, start, end)
}

func (r *commandReads) BookingByExternalPaymentID(ctx context.Context, paymentID string) (*shared.BookingSnapshot, error) {
	return r.bookings().FindSnapshotByPaymentID(ctx, r.dbtx, paymentID)
}

func (r *commandReads) SaleByExternalPaymentID(ctx context.Context, paymentID string) (*shared.SaleSnapshot, error) {
	return r.sales().FindSnapshotByPaymentID(ctx, r.dbtx, paymentID)
}

func (r *commandReads) PendingPaymentByReference(ctx context.Context, referenceID string) (*shared.PendingPaymentSnapshot, error) {
	return r.pending().FindPaymentByReference(ctx, r.dbtx, referenceID)
}

func (r *commandReads) PendingSaleByReference(ctx context.Context, referenceID string) (*shared.PendingSaleSnapshot, error) {
	return r.pending().FindSaleByReference(ctx, r.dbtx, referenceID)
}

func (r *commandReads) OpenCashboxSession(ctx context.Context) (*cashbox.Session, error) {
	return r.cashbox().FindOpenSession(ctx, r.dbtx)
}

func (r *commandReads) CashTotals(ctx context.Context, sessionID uuid.UUID, since, until time.Time) (*shared.CashTotals, error) {
	return r.cashbox().CashTotals(ctx, r.dbtx, sessionID, since, until)
}

func (r *commandReads) TemplateByID(ctx context.Context, id uuid.UUID) (*recurring.Template, error) {
	return r.templates().FindEntityByID(ctx, r.dbtx, id)
}

func (r *commandReads) ActiveTemplates(ctx context.Context) ([]*recurring.Template, error) {
	return r.templates().FindActive(ctx, r.dbtx)
}
