package payment

import (
	"context"
	"testing"

	"francoggm/batch-charger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderAmountsRange(t *testing.T) {
	low := decimal.NewFromInt(50)
	high := decimal.NewFromInt(101)

	for range 200 {
		amount, err := PlaceholderAmounts{}.Amount(context.Background(), &models.Customer{ID: 1})
		require.NoError(t, err)
		assert.True(t, amount.GreaterThanOrEqual(low), amount.String())
		assert.True(t, amount.LessThanOrEqual(high), amount.String())
		assert.LessOrEqual(t, -amount.Exponent(), int32(2))
	}
}

func TestDirectoryAmountsRejectsNonPositive(t *testing.T) {
	customer := &models.Customer{ID: 1, AmountDue: decimal.NewNullDecimal(decimal.Zero)}

	_, err := DirectoryAmounts{}.Amount(context.Background(), customer)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNewAmountSource(t *testing.T) {
	source, err := NewAmountSource("directory")
	require.NoError(t, err)
	assert.IsType(t, DirectoryAmounts{}, source)

	_, err = NewAmountSource("lottery")
	assert.Error(t, err)
}
