package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"francoggm/batch-charger/internal/models"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaNotifier struct {
	writer kafkaWriter
}

func NewKafkaNotifier(brokers, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(brokers, ",")...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, customer *models.Customer, last4 string) error {
	payload, err := sonic.Marshal(NewDeclineNotice(customer, last4))
	if err != nil {
		return fmt.Errorf("failed to marshal decline notice: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(customer.ID, 10)),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write decline notice: %w", err)
	}

	return nil
}

func (n *KafkaNotifier) Close() error {
	if w, ok := n.writer.(*kafka.Writer); ok {
		return w.Close()
	}

	return nil
}
