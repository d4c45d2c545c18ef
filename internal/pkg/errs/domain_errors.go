package errs

import (
	"errors"
	"strings"
)

// Domain-specific sentinel errors shared across usecase layers
var (
	// Court errors
	ErrCourtNotFound = errors.New("court not found")
	ErrCourtInactive = errors.New("court is not active")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotConflict    = errors.New("slot conflict")
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// Payment reconciliation errors
	ErrDuplicateNotification = errors.New("duplicate payment notification")
	ErrPendingNotFound       = errors.New("pending record not found")
	ErrStockShortfall        = errors.New("insufficient stock")
	ErrProductNotFound       = errors.New("product not found")

	// Recurring template errors
	ErrTemplateNotFound = errors.New("recurring booking not found")
	ErrTemplateConflict = errors.New("recurring booking already exists for this slot")

	// Cashbox errors
	ErrNoOpenSession  = errors.New("no open cashbox session")
	ErrSessionAlready = errors.New("cashbox session already open")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// SlotConflictError names the requested slots that turned out to be
// unavailable, so handlers can put them in the response detail.
// It matches ErrSlotConflict under errors.Is.
type SlotConflictError struct {
	Slots []string
}

func (e *SlotConflictError) Error() string {
	return "slots already taken: " + strings.Join(e.Slots, ", ")
}

func (e *SlotConflictError) Unwrap() error { return ErrSlotConflict }
