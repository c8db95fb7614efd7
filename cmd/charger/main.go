package main

import (
	"context"
	"fmt"
	"os"

	"francoggm/batch-charger/internal/app/directory"
	"francoggm/batch-charger/internal/app/notification"
	"francoggm/batch-charger/internal/app/payment"
	"francoggm/batch-charger/internal/app/telemetry"
	"francoggm/batch-charger/internal/app/workers"
	"francoggm/batch-charger/internal/app/workers/processors"
	"francoggm/batch-charger/internal/config"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := telemetry.NewLogger(cfg.Telemetry.LogLevel)
	if err != nil {
		panic(err)
	}

	os.Exit(execute(cfg, logger.With(zap.String("batch_id", uuid.New().String()))))
}

// execute runs the batch and returns the process exit code. The logger is
// flushed before the code is returned.
func execute(cfg *config.Config, logger *zap.Logger) int {
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Payment batch could not start", zap.Error(err))
		return 1
	}

	return 0
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Batch.Timeout)
	defer cancel()

	customers, err := directory.LoadCustomers(cfg.Batch.CustomersFile, logger)
	if err != nil {
		return err
	}

	// One traceparent for every request of this run
	traceparent, err := telemetry.NewTraceparent()
	if err != nil {
		return err
	}

	amounts, err := payment.NewAmountSource(cfg.PaymentAPIConfig.AmountSource)
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	metrics := telemetry.NewMetrics()

	// Services
	paymentClient := payment.NewPaymentClient(
		cfg.PaymentAPIConfig.URL,
		cfg.PaymentAPIConfig.APIKey,
		traceparent,
		cfg.PaymentAPIConfig.RequestTimeout,
		cfg.PaymentAPIConfig.MaxConnsPerHost,
		logger,
	)
	paymentService := payment.NewPaymentService(paymentClient, amounts)

	// Worker processor and orchestrator
	paymentProcessor := processors.NewPaymentProcessor(paymentService, notifier, metrics, logger)
	paymentOrchestrator := workers.NewOrchestrator(paymentProcessor, logger)

	logger.Info("Starting payment batch",
		zap.Int("customers", len(customers)),
		zap.String("traceparent", traceparent),
	)

	summary := paymentOrchestrator.ProcessAll(ctx, customers)

	logger.Info("Payment batch finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)

	if cfg.Telemetry.PushgatewayURL != "" {
		if err := metrics.Push(cfg.Telemetry.PushgatewayURL, "payment_batch"); err != nil {
			logger.Error("Failed to push batch metrics", zap.Error(err))
		}
	}

	return nil
}

func newNotifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (notification.Notifier, func(), error) {
	switch cfg.Notifier.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Cache.Host, cfg.Cache.Port),
			Password: cfg.Cache.Password,
			DB:       0,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		return notification.NewRedisNotifier(rdb, cfg.Notifier.RedisStream), func() { rdb.Close() }, nil

	case "nats":
		nc, err := nats.Connect(cfg.Notifier.NATSURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to nats: %w", err)
		}

		closeFn := func() {
			if err := nc.Drain(); err != nil {
				logger.Error("Failed to drain nats connection", zap.Error(err))
			}
		}
		return notification.NewNATSNotifier(nc, cfg.Notifier.NATSSubject), closeFn, nil

	case "kafka":
		notifier := notification.NewKafkaNotifier(cfg.Notifier.KafkaBrokers, cfg.Notifier.KafkaTopic)

		closeFn := func() {
			if err := notifier.Close(); err != nil {
				logger.Error("Failed to close kafka writer", zap.Error(err))
			}
		}
		return notifier, closeFn, nil
	}

	return notification.NewLogNotifier(logger), func() {}, nil
}
