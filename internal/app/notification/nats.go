package notification

import (
	"context"
	"fmt"

	"francoggm/batch-charger/internal/models"

	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"
)

type natsPublisher interface {
	Publish(subject string, data []byte) error
}

type NATSNotifier struct {
	conn    natsPublisher
	subject string
}

func NewNATSNotifier(conn *nats.Conn, subject string) *NATSNotifier {
	return &NATSNotifier{
		conn:    conn,
		subject: subject,
	}
}

func (n *NATSNotifier) Notify(_ context.Context, customer *models.Customer, last4 string) error {
	payload, err := sonic.Marshal(NewDeclineNotice(customer, last4))
	if err != nil {
		return fmt.Errorf("failed to marshal decline notice: %w", err)
	}

	if err := n.conn.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("failed to publish decline notice to %s: %w", n.subject, err)
	}

	return nil
}
