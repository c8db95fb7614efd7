package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingAPIKey = errors.New("STRIPE_API_KEY is not set")

type Config struct {
	Cache
	Batch
	Notifier
	Telemetry
	PaymentAPIConfig
}

type Cache struct {
	Host     string
	Port     string
	Password string
}

type Batch struct {
	CustomersFile string
	Timeout       time.Duration
}

type Notifier struct {
	Backend      string
	RedisStream  string
	NATSURL      string
	NATSSubject  string
	KafkaBrokers string
	KafkaTopic   string
}

type Telemetry struct {
	LogLevel       string
	PushgatewayURL string
}

type PaymentAPIConfig struct {
	URL             string
	APIKey          string
	RequestTimeout  time.Duration
	MaxConnsPerHost int
	AmountSource    string
}

func NewConfig() (*Config, error) {
	cfg := &Config{
		Cache: Cache{
			Host:     getEnvString("CACHE_HOST", "localhost"),
			Port:     getEnvString("CACHE_PORT", "6379"),
			Password: getEnvString("CACHE_PASSWORD", ""),
		},
		Batch: Batch{
			CustomersFile: getEnvString("CUSTOMERS_FILE", "customer-list.json"),
			Timeout:       getEnvDuration("BATCH_TIMEOUT", 5*time.Minute),
		},
		Notifier: Notifier{
			Backend:      getEnvString("NOTIFIER_BACKEND", "log"),
			RedisStream:  getEnvString("NOTIFIER_REDIS_STREAM", "payment-declines"),
			NATSURL:      getEnvString("NATS_URL", "nats://localhost:4222"),
			NATSSubject:  getEnvString("NOTIFIER_NATS_SUBJECT", "payments.declined"),
			KafkaBrokers: getEnvString("KAFKA_BROKERS", "localhost:9092"),
			KafkaTopic:   getEnvString("NOTIFIER_KAFKA_TOPIC", "payment.declined"),
		},
		Telemetry: Telemetry{
			LogLevel:       getEnvString("LOG_LEVEL", "info"),
			PushgatewayURL: getEnvString("PUSHGATEWAY_URL", ""),
		},
		PaymentAPIConfig: PaymentAPIConfig{
			URL:             getEnvString("PAYMENT_API_URL", "https://api.stripe.com/some-payment-endpoint"),
			APIKey:          getEnvString("STRIPE_API_KEY", ""),
			RequestTimeout:  getEnvDuration("PAYMENT_REQUEST_TIMEOUT", 10*time.Second),
			MaxConnsPerHost: getEnvInt("PAYMENT_MAX_CONNS_PER_HOST", 512),
			AmountSource:    getEnvString("AMOUNT_SOURCE", "placeholder"),
		},
	}

	if cfg.PaymentAPIConfig.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	switch cfg.Notifier.Backend {
	case "log", "redis", "nats", "kafka":
	default:
		return nil, fmt.Errorf("unknown notifier backend %q", cfg.Notifier.Backend)
	}

	switch cfg.PaymentAPIConfig.AmountSource {
	case "placeholder", "directory":
	default:
		return nil, fmt.Errorf("unknown amount source %q", cfg.PaymentAPIConfig.AmountSource)
	}

	return cfg, nil
}

func getEnvString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return defaultValue
	}

	return duration
}
