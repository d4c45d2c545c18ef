//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"padel-club-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sqlstateError struct{ code string }

func (e *sqlstateError) Error() string { return "sqlstate " + e.code }

func TestMark(t *testing.T) {
	t.Run("sentinel is visible to plain errors.Is", func(t *testing.T) {
		err := errs.Mark(errs.New("boom"), errs.ErrSlotConflict)
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
	})

	t.Run("nil error collapses to the sentinel", func(t *testing.T) {
		assert.ErrorIs(t, errs.Mark(nil, errs.ErrCourtNotFound), errs.ErrCourtNotFound)
	})

	t.Run("original cause stays reachable through errors.As", func(t *testing.T) {
		cause := &sqlstateError{code: "40001"}
		err := errs.Mark(errs.Wrap(cause, "tx failed"), errs.ErrDatabaseOperationFailed)

		var got *sqlstateError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, "40001", got.code)
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})

	t.Run("marking twice keeps both sentinels", func(t *testing.T) {
		err := errs.Mark(errs.Mark(errs.New("boom"), errs.ErrSlotConflict), errs.ErrDomainValidation)
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestSlotConflictError(t *testing.T) {
	err := errs.Mark(&errs.SlotConflictError{Slots: []string{"2026-03-16 18:00-19:00"}}, errs.ErrSlotConflict)
	assert.ErrorIs(t, err, errs.ErrSlotConflict)

	var conflict *errs.SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"2026-03-16 18:00-19:00"}, conflict.Slots)
}
