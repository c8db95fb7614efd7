package processors

import (
	"context"
	"errors"
	"time"

	"francoggm/batch-charger/internal/app/notification"
	"francoggm/batch-charger/internal/app/payment"
	"francoggm/batch-charger/internal/app/paymentmethod"
	"francoggm/batch-charger/internal/app/telemetry"
	"francoggm/batch-charger/internal/models"

	"go.uber.org/zap"
)

type Charger interface {
	Charge(ctx context.Context, customer *models.Customer) (*models.ChargeResponse, error)
}

type PaymentProcessor struct {
	charger  Charger
	notifier notification.Notifier
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

func NewPaymentProcessor(charger Charger, notifier notification.Notifier, metrics *telemetry.Metrics, logger *zap.Logger) *PaymentProcessor {
	return &PaymentProcessor{
		charger:  charger,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// ProcessEvent charges one customer. A declined charge notifies the customer
// before the error is returned; no other failure notifies.
func (p *PaymentProcessor) ProcessEvent(ctx context.Context, customer *models.Customer) error {
	start := time.Now()
	_, err := p.charger.Charge(ctx, customer)
	p.metrics.ChargeDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		p.metrics.ChargeAttempts.WithLabelValues(telemetry.OutcomeSucceeded).Inc()
		p.logger.Info("Successfully processed payment for customer", zap.Int64("customer_id", customer.ID))
		return nil
	}

	if !errors.Is(err, payment.ErrPaymentDeclined) {
		outcome := telemetry.OutcomeFailed
		if errors.Is(err, payment.ErrPaymentRejected) {
			outcome = telemetry.OutcomeRejected
		}
		p.metrics.ChargeAttempts.WithLabelValues(outcome).Inc()

		return err
	}

	p.metrics.ChargeAttempts.WithLabelValues(telemetry.OutcomeDeclined).Inc()

	last4 := paymentmethod.Last4(customer)
	if last4 == "" {
		p.logger.Warn("No last4 digits for default payment method",
			zap.Int64("customer_id", customer.ID),
			zap.String("payment_method", string(customer.PaymentMethods.Default)),
		)
	}

	if nerr := p.notifier.Notify(ctx, customer, last4); nerr != nil {
		p.metrics.Notifications.WithLabelValues("failed").Inc()
		p.logger.Error("Failed to send decline notice", zap.Int64("customer_id", customer.ID), zap.Error(nerr))
	} else {
		p.metrics.Notifications.WithLabelValues("sent").Inc()
	}

	return err
}
