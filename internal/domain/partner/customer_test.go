package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopbooks/backend/internal/domain/shared"
)

func TestCustomerDue(t *testing.T) {
	tenantID := uuid.New()

	t.Run("credit limit caps the due", func(t *testing.T) {
		c, err := NewCustomer(tenantID, "CUS-01", "Jane", decimal.Zero, decimal.NewFromInt(500))
		require.NoError(t, err)

		require.NoError(t, c.IncreaseDue(decimal.NewFromInt(400)))
		err = c.IncreaseDue(decimal.NewFromInt(101))
		assert.True(t, shared.IsDomainErrorWithCode(err, "CREDIT_LIMIT_EXCEEDED"))
		assert.True(t, c.CurrentDue.Equal(decimal.NewFromInt(400)))
	})

	t.Run("zero credit limit means unlimited", func(t *testing.T) {
		c, _ := NewCustomer(tenantID, "CUS-01", "Jane", decimal.Zero, decimal.Zero)
		require.NoError(t, c.IncreaseDue(decimal.NewFromInt(1000000)))
	})

	t.Run("collection may not exceed the due", func(t *testing.T) {
		c, _ := NewCustomer(tenantID, "CUS-01", "Jane", decimal.NewFromInt(80), decimal.Zero)
		err := c.ReceivePayment(decimal.NewFromInt(81))
		assert.True(t, shared.IsDomainErrorWithCode(err, "PAYMENT_EXCEEDS_DUE"))

		require.NoError(t, c.ReceivePayment(decimal.NewFromInt(80)))
		assert.True(t, c.CurrentDue.IsZero())
	})
}

func TestCustomerValidation(t *testing.T) {
	tenantID := uuid.New()

	_, err := NewCustomer(tenantID, "", "Jane", decimal.Zero, decimal.Zero)
	assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_CUSTOMER_CODE"))

	_, err = NewCustomer(tenantID, "CUS-01", "Jane", decimal.Zero, decimal.NewFromInt(-1))
	assert.True(t, shared.IsDomainErrorWithCode(err, "INVALID_CREDIT_LIMIT"))
}
