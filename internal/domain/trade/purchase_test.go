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

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase(uuid.New(), "PUR-2026-00001", uuid.New(), "Acme Supplies", time.Now())
	require.NoError(t, err)
	return p
}

func TestPurchaseTotals(t *testing.T) {
	t.Run("items drive subtotal, total and due", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.AddItem(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromInt(5)))
		require.NoError(t, p.AddItem(uuid.New(), "Gadget", decimal.NewFromInt(2), decimal.NewFromInt(25)))

		assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(100)))
		assert.True(t, p.Total.Equal(decimal.NewFromInt(100)))
		assert.True(t, p.Due.Equal(decimal.NewFromInt(100)))
	})

	t.Run("discount and paid split due", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.AddItem(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromInt(10)))
		require.NoError(t, p.ApplyDiscount(decimal.NewFromInt(20)))
		require.NoError(t, p.SetPaid(decimal.NewFromInt(50)))

		assert.True(t, p.Total.Equal(decimal.NewFromInt(80)))
		assert.True(t, p.Paid.Equal(decimal.NewFromInt(50)))
		assert.True(t, p.Due.Equal(decimal.NewFromInt(30)))
	})

	t.Run("discount cannot exceed subtotal", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))
		err := p.ApplyDiscount(decimal.NewFromInt(11))
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_DISCOUNT"))
	})

	t.Run("paid cannot exceed total", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))
		err := p.SetPaid(decimal.NewFromInt(11))
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_PAID"))
	})

	t.Run("replace items resets totals", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.AddItem(uuid.New(), "Widget", decimal.NewFromInt(5), decimal.NewFromInt(4)))
		p.ReplaceItems()
		assert.Empty(t, p.Items)
		assert.True(t, p.Subtotal.IsZero())
		assert.True(t, p.Due.IsZero())
	})
}

func TestPurchaseValidation(t *testing.T) {
	t.Run("requires number, vendor and vendor name", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "", uuid.New(), "Acme", time.Now())
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_NUMBER"))

		_, err = NewPurchase(uuid.New(), "PUR-1", uuid.Nil, "Acme", time.Now())
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_VENDOR"))

		_, err = NewPurchase(uuid.New(), "PUR-1", uuid.New(), "", time.Now())
		assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_VENDOR_NAME"))
	})

	t.Run("rejects bad item lines", func(t *testing.T) {
		p := newTestPurchase(t)
		assert.Error(t, p.AddItem(uuid.Nil, "Widget", decimal.NewFromInt(1), decimal.NewFromInt(1)))
		assert.Error(t, p.AddItem(uuid.New(), "Widget", decimal.Zero, decimal.NewFromInt(1)))
		assert.Error(t, p.AddItem(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(-1)))
	})

	t.Run("change vendor", func(t *testing.T) {
		p := newTestPurchase(t)
		newVendorID := uuid.New()
		require.NoError(t, p.ChangeVendor(newVendorID, "Globex"))
		assert.Equal(t, newVendorID, p.VendorID)
		assert.Equal(t, "Globex", p.VendorName)

		assert.Error(t, p.ChangeVendor(uuid.Nil, "Globex"))
	})
}
