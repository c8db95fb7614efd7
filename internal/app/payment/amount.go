package payment

import (
	"context"
	"fmt"
	"math/rand/v2"

	"francoggm/batch-charger/internal/models"

	"github.com/shopspring/decimal"
)

type AmountSource interface {
	Amount(ctx context.Context, customer *models.Customer) (decimal.Decimal, error)
}

func NewAmountSource(name string) (AmountSource, error) {
	switch name {
	case "placeholder":
		return PlaceholderAmounts{}, nil
	case "directory":
		return DirectoryAmounts{}, nil
	}

	return nil, fmt.Errorf("unknown amount source %q", name)
}

// PlaceholderAmounts draws a random amount between 50 and 101. It does not
// come from any ledger and only exists until invoices feed the directory.
type PlaceholderAmounts struct{}

func (PlaceholderAmounts) Amount(_ context.Context, _ *models.Customer) (decimal.Decimal, error) {
	whole := decimal.NewFromInt(int64(50 + rand.IntN(51)))
	return whole.Add(decimal.NewFromFloat(rand.Float64())).Round(2), nil
}

// DirectoryAmounts charges the amountDue carried by the customer record.
type DirectoryAmounts struct{}

func (DirectoryAmounts) Amount(_ context.Context, customer *models.Customer) (decimal.Decimal, error) {
	if !customer.AmountDue.Valid {
		return decimal.Zero, ErrNoAmountDue
	}

	if !customer.AmountDue.Decimal.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	return customer.AmountDue.Decimal, nil
}
