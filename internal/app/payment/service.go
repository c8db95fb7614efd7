package payment

import (
	"context"
	"fmt"

	"francoggm/batch-charger/internal/models"
)

type PaymentService struct {
	client  *PaymentClient
	amounts AmountSource
}

func NewPaymentService(client *PaymentClient, amounts AmountSource) *PaymentService {
	return &PaymentService{
		client:  client,
		amounts: amounts,
	}
}

// Charge bills the customer's default payment method. The payload is
// forwarded as stored; the payment API validates it.
func (p *PaymentService) Charge(ctx context.Context, customer *models.Customer) (*models.ChargeResponse, error) {
	amount, err := p.amounts.Amount(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to get amount for customer %d: %w", customer.ID, err)
	}

	method, _ := customer.PaymentMethods.DefaultMethod()

	return p.client.MakeCharge(ctx, &models.ChargeRequest{
		CustomerID:    customer.ID,
		PaymentMethod: method,
		Amount:        amount.StringFixed(2),
	})
}
