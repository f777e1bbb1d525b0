package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbooks/backend/internal/domain/shared"
)

func newTestSale(t *testing.T) *Sale {
	t.Helper()
	s, err := NewSale(uuid.New(), "SAL-2026-00001", uuid.New(), "Jane Doe", time.Now())
	require.NoError(t, err)
	return s
}

func TestSaleLifecycle(t *testing.T) {
	t.Run("pending to completed", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.AddItem(uuid.New(), "Widget", decimal.NewFromInt(2), decimal.NewFromInt(30)))

		require.NoError(t, s.Complete())
		assert.Equal(t, SaleStatusCompleted, s.Status)
		require.NotNil(t, s.CompletedAt)
		assert.False(t, s.CanModify())
	})

	t.Run("cannot complete an empty sale", func(t *testing.T) {
		s := newTestSale(t)
		err := s.Complete()
		assert.True(t, shared.IsDomainErrorWithCode(err, "EMPTY_SALE"))
	})

	t.Run("pending to cancelled is terminal", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.Cancel())
		assert.Equal(t, SaleStatusCancelled, s.Status)
		assert.True(t, s.Status.IsTerminal())
		assert.ErrorIs(t, s.Complete(), shared.ErrInvalidState)
	})

	t.Run("completed to returned", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))
		require.NoError(t, s.Complete())

		require.NoError(t, s.Return())
		assert.Equal(t, SaleStatusReturned, s.Status)
		require.NotNil(t, s.ReturnedAt)
	})

	t.Run("cannot return a pending sale", func(t *testing.T) {
		s := newTestSale(t)
		assert.ErrorIs(t, s.Return(), shared.ErrInvalidState)
	})

	t.Run("cannot cancel a completed sale", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))
		require.NoError(t, s.Complete())
		assert.ErrorIs(t, s.Cancel(), shared.ErrInvalidState)
	})
}

func TestSaleTotals(t *testing.T) {
	t.Run("items, discount and paid maintain the invariant", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.AddItem(uuid.New(), "Widget", decimal.NewFromInt(3), decimal.NewFromInt(40)))
		require.NoError(t, s.ApplyDiscount(decimal.NewFromInt(20)))
		require.NoError(t, s.SetPaid(decimal.NewFromInt(60)))

		assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(120)))
		assert.True(t, s.Total.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.Due.Equal(decimal.NewFromInt(40)))
	})

	t.Run("paid cannot exceed total", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(50)))
		assert.Error(t, s.SetPaid(decimal.NewFromInt(51)))
	})

	t.Run("completed documents are frozen", func(t *testing.T) {
		s := newTestSale(t)
		require.NoError(t, s.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(50)))
		require.NoError(t, s.Complete())

		assert.ErrorIs(t, s.AddItem(uuid.New(), "More", decimal.NewFromInt(1), decimal.NewFromInt(1)), shared.ErrInvalidState)
		assert.ErrorIs(t, s.ApplyDiscount(decimal.NewFromInt(1)), shared.ErrInvalidState)
		assert.ErrorIs(t, s.SetPaid(decimal.NewFromInt(1)), shared.ErrInvalidState)
		assert.ErrorIs(t, s.ReplaceItems(), shared.ErrInvalidState)
	})
}
