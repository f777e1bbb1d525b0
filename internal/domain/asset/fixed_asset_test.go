package asset

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbooks/backend/internal/domain/shared"
)

func newTestAsset(t *testing.T, cost, rate int64) *FixedAsset {
	t.Helper()
	a, err := NewFixedAsset(uuid.New(), "Delivery Van", "VAN-01",
		decimal.NewFromInt(cost), decimal.NewFromInt(rate), time.Now())
	require.NoError(t, err)
	return a
}

func TestFixedAssetDepreciation(t *testing.T) {
	t.Run("monthly accrual is cost * rate / 100 / 12", func(t *testing.T) {
		a := newTestAsset(t, 1200, 10)
		assert.True(t, a.MonthlyDepreciation().Equal(decimal.NewFromInt(10)))
	})

	t.Run("twelve months at ten percent", func(t *testing.T) {
		a := newTestAsset(t, 1000, 10)
		require.NoError(t, a.ApplyDepreciation(12))
		assert.True(t, a.AccumulatedDepreciation.Equal(decimal.NewFromInt(100)))
		assert.True(t, a.CurrentValue.Equal(decimal.NewFromInt(900)))
	})

	t.Run("accumulated depreciation clamps at cost", func(t *testing.T) {
		a := newTestAsset(t, 1000, 50)
		require.NoError(t, a.ApplyDepreciation(36))
		assert.True(t, a.AccumulatedDepreciation.Equal(decimal.NewFromInt(1000)))
		assert.True(t, a.CurrentValue.IsZero())
	})

	t.Run("rejects non-positive months", func(t *testing.T) {
		a := newTestAsset(t, 1000, 10)
		assert.Error(t, a.ApplyDepreciation(0))
		assert.Error(t, a.ApplyDepreciation(-1))
	})

	t.Run("terminal assets do not depreciate", func(t *testing.T) {
		a := newTestAsset(t, 1000, 10)
		require.NoError(t, a.Dispose())
		assert.ErrorIs(t, a.ApplyDepreciation(1), shared.ErrInvalidState)
	})
}

func TestFixedAssetLifecycle(t *testing.T) {
	t.Run("dispose is terminal", func(t *testing.T) {
		a := newTestAsset(t, 1000, 10)
		require.NoError(t, a.Dispose())
		assert.Equal(t, FixedAssetDisposed, a.Status)
		require.NotNil(t, a.DisposedAt)
		assert.ErrorIs(t, a.Sell(decimal.NewFromInt(1)), shared.ErrInvalidState)
	})

	t.Run("sell records the amount", func(t *testing.T) {
		a := newTestAsset(t, 1000, 10)
		require.NoError(t, a.Sell(decimal.NewFromInt(650)))
		assert.Equal(t, FixedAssetSold, a.Status)
		require.NotNil(t, a.SoldAmount)
		assert.True(t, a.SoldAmount.Equal(decimal.NewFromInt(650)))
		assert.ErrorIs(t, a.Dispose(), shared.ErrInvalidState)
	})

	t.Run("sell rejects negative amounts", func(t *testing.T) {
		a := newTestAsset(t, 1000, 10)
		assert.Error(t, a.Sell(decimal.NewFromInt(-5)))
	})
}

func TestNewFixedAssetValidation(t *testing.T) {
	tenantID := uuid.New()

	_, err := NewFixedAsset(tenantID, "", "VAN-01", decimal.NewFromInt(100), decimal.NewFromInt(10), time.Now())
	assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_ASSET_NAME"))

	_, err = NewFixedAsset(tenantID, "Van", "VAN-01", decimal.Zero, decimal.NewFromInt(10), time.Now())
	assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_COST"))

	_, err = NewFixedAsset(tenantID, "Van", "VAN-01", decimal.NewFromInt(100), decimal.NewFromInt(101), time.Now())
	assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_RATE"))
}
