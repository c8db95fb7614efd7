package notification

import (
	"context"

	"francoggm/batch-charger/internal/models"

	"go.uber.org/zap"
)

// Notifier tells a customer that a charge against their payment method was
// declined.
type Notifier interface {
	Notify(ctx context.Context, customer *models.Customer, last4 string) error
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, customer *models.Customer, last4 string) error {
	notice := NewDeclineNotice(customer, last4)

	n.logger.Info("Sending decline notice",
		zap.Int64("customer_id", notice.CustomerID),
		zap.String("payment_method", string(notice.PaymentMethod)),
		zap.String("last4", notice.Last4Digits),
		zap.String("message", notice.Message),
	)

	return nil
}
