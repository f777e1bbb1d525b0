package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestStockSummaryApply(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("weighted average reprices on inbound", func(t *testing.T) {
		s, err := NewStockSummary(tenantID, productID)
		require.NoError(t, err)

		require.NoError(t, s.Apply(decimal.NewFromInt(10), decPtr(5)))
		assert.True(t, s.TotalQty.Equal(decimal.NewFromInt(10)))
		assert.True(t, s.AvgPurchasePrice.Equal(decimal.NewFromInt(5)))
		assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(50)))

		require.NoError(t, s.Apply(decimal.NewFromInt(10), decPtr(15)))
		assert.True(t, s.TotalQty.Equal(decimal.NewFromInt(20)))
		assert.True(t, s.AvgPurchasePrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(200)))
	})

	t.Run("outbound keeps the average unchanged", func(t *testing.T) {
		s, _ := NewStockSummary(tenantID, productID)
		require.NoError(t, s.Apply(decimal.NewFromInt(20), decPtr(10)))

		require.NoError(t, s.Apply(decimal.NewFromInt(-5), nil))
		assert.True(t, s.TotalQty.Equal(decimal.NewFromInt(15)))
		assert.True(t, s.AvgPurchasePrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(150)))
	})

	t.Run("priceless inbound keeps the average unchanged", func(t *testing.T) {
		s, _ := NewStockSummary(tenantID, productID)
		require.NoError(t, s.Apply(decimal.NewFromInt(10), decPtr(8)))

		require.NoError(t, s.Apply(decimal.NewFromInt(5), nil))
		assert.True(t, s.TotalQty.Equal(decimal.NewFromInt(15)))
		assert.True(t, s.AvgPurchasePrice.Equal(decimal.NewFromInt(8)))
	})

	t.Run("average rounds to four decimals", func(t *testing.T) {
		s, _ := NewStockSummary(tenantID, productID)
		require.NoError(t, s.Apply(decimal.NewFromInt(3), decPtr(10)))
		require.NoError(t, s.Apply(decimal.NewFromInt(3), decPtr(11)))
		assert.True(t, s.AvgPurchasePrice.Equal(decimal.NewFromFloat(10.5)))

		require.NoError(t, s.Apply(decimal.NewFromInt(1), decPtr(10)))
		assert.Equal(t, "10.4286", s.AvgPurchasePrice.StringFixed(4))
	})

	t.Run("zero delta leaves the summary untouched", func(t *testing.T) {
		s, _ := NewStockSummary(tenantID, productID)
		require.NoError(t, s.Apply(decimal.NewFromInt(10), decPtr(8)))
		s.ClearDomainEvents()

		require.NoError(t, s.Apply(decimal.Zero, nil))
		assert.True(t, s.TotalQty.Equal(decimal.NewFromInt(10)))
		assert.True(t, s.AvgPurchasePrice.Equal(decimal.NewFromInt(8)))
		assert.True(t, s.TotalValue.Equal(decimal.NewFromInt(80)))
		assert.Empty(t, s.GetDomainEvents())
	})

	t.Run("oversell is tolerated and flagged", func(t *testing.T) {
		s, _ := NewStockSummary(tenantID, productID)
		require.NoError(t, s.Apply(decimal.NewFromInt(5), decPtr(10)))

		require.NoError(t, s.Apply(decimal.NewFromInt(-8), nil))
		assert.True(t, s.TotalQty.Equal(decimal.NewFromInt(-3)))
		assert.NotEmpty(t, s.GetDomainEvents())
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		s, _ := NewStockSummary(tenantID, productID)
		err := s.Apply(decimal.NewFromInt(5), decPtr(-1))
		assert.Error(t, err)
	})
}

func TestStockSummaryCanFulfill(t *testing.T) {
	s, err := NewStockSummary(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, s.Apply(decimal.NewFromInt(10), decPtr(2)))

	assert.True(t, s.CanFulfill(decimal.NewFromInt(10)))
	assert.False(t, s.CanFulfill(decimal.NewFromInt(11)))
}

func TestNewStockSummaryValidation(t *testing.T) {
	_, err := NewStockSummary(uuid.New(), uuid.Nil)
	assert.Error(t, err)
}
