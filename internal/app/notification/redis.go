package notification

import (
	"context"
	"fmt"

	"francoggm/batch-charger/internal/models"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// RedisNotifier appends notices to a Redis stream read by the messaging service.
type RedisNotifier struct {
	cache  redis.Cmdable
	stream string
}

func NewRedisNotifier(cache redis.Cmdable, stream string) *RedisNotifier {
	return &RedisNotifier{
		cache:  cache,
		stream: stream,
	}
}

func (n *RedisNotifier) Notify(ctx context.Context, customer *models.Customer, last4 string) error {
	payload, err := sonic.Marshal(NewDeclineNotice(customer, last4))
	if err != nil {
		return fmt.Errorf("failed to marshal decline notice: %w", err)
	}

	err = n.cache.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{
			"customer_id": customer.ID,
			"notice":      payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add decline notice to stream %s: %w", n.stream, err)
	}

	return nil
}
