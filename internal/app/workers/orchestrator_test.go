package workers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"francoggm/batch-charger/internal/app/payment"
	"francoggm/batch-charger/internal/app/telemetry"
	"francoggm/batch-charger/internal/app/workers/processors"
	"francoggm/batch-charger/internal/models"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type processorFunc func(ctx context.Context, customer *models.Customer) error

func (f processorFunc) ProcessEvent(ctx context.Context, customer *models.Customer) error {
	return f(ctx, customer)
}

func customersWithIDs(ids ...int64) []models.Customer {
	customers := make([]models.Customer, 0, len(ids))
	for _, id := range ids {
		customers = append(customers, models.Customer{ID: id})
	}
	return customers
}

func TestProcessAllIsolatesFailures(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []int64
	)

	processor := processorFunc(func(_ context.Context, customer *models.Customer) error {
		mu.Lock()
		seen = append(seen, customer.ID)
		mu.Unlock()

		switch customer.ID {
		case 2:
			panic("unexpected nil payload")
		case 3:
			return errors.New("connection reset by peer")
		}
		return nil
	})

	core, logs := observer.New(zapcore.ErrorLevel)
	orchestrator := NewOrchestrator(processor, zap.New(core))

	summary := orchestrator.ProcessAll(context.Background(), customersWithIDs(1, 2, 3, 4))

	assert.Equal(t, Summary{Total: 4, Succeeded: 2, Failed: 2}, summary)
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	assert.Equal(t, []int64{1, 2, 3, 4}, seen)
	assert.Equal(t, 2, logs.FilterMessage("The payment failed to process").Len())
}

func TestProcessAllStartsEveryAttemptAtOnce(t *testing.T) {
	const total = 50

	var started atomic.Int64
	allStarted := make(chan struct{})

	processor := processorFunc(func(_ context.Context, _ *models.Customer) error {
		if started.Add(1) == total {
			close(allStarted)
		}

		select {
		case <-allStarted:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("attempts were not started together")
		}
	})

	ids := make([]int64, total)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	summary := NewOrchestrator(processor, zap.NewNop()).ProcessAll(context.Background(), customersWithIDs(ids...))
	assert.Equal(t, Summary{Total: total, Succeeded: total}, summary)
}

func TestProcessAllEmptyBatch(t *testing.T) {
	processor := processorFunc(func(_ context.Context, _ *models.Customer) error {
		t.Fatal("processor must not be called")
		return nil
	})

	summary := NewOrchestrator(processor, zap.NewNop()).ProcessAll(context.Background(), nil)
	assert.Equal(t, Summary{}, summary)
}

type sentNotice struct {
	customerID int64
	last4      string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []sentNotice
}

func (r *recordingNotifier) Notify(_ context.Context, customer *models.Customer, last4 string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, sentNotice{customerID: customer.ID, last4: last4})
	return nil
}

const batchCustomers = `[
	{"id": 1, "paymentMethods": {"defaultPaymentMethod": "card", "card": {"last4": 4242}}},
	{"id": 2, "paymentMethods": {"defaultPaymentMethod": "card", "card": {"last4": 1111}}},
	{"id": 3, "paymentMethods": {"defaultPaymentMethod": "eu_pay_by_bank", "eu_pay_by_bank": {"iban_last_4": "7890"}}},
	{"id": 4, "paymentMethods": {"defaultPaymentMethod": "usBankAccount", "usBankAccount": {"accountNumberLast4Digits": "6789"}}},
	{"id": 5, "paymentMethods": {"defaultPaymentMethod": "card", "card": {"last4": 5555}}}
]`

// newScriptedPaymentAPI answers per customer: 1 and 3 are declined, 2 is
// charged, 4 drops the connection and 5 fails authentication.
func newScriptedPaymentAPI(t *testing.T) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	router.Post("/charges", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		var req struct {
			CustomerID int64 `json:"customerId"`
		}
		if err := sonic.Unmarshal(data, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "bad request"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")

		switch req.CustomerID {
		case 1, 3:
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"message": "Payment Failed"}`))
		case 4:
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				conn.Close()
			}
		case 5:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "Invalid API Key provided"}}`))
		default:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "ch_ok", "status": "succeeded"}`))
		}
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func TestProcessAllDeclineScenarios(t *testing.T) {
	server := newScriptedPaymentAPI(t)

	var customers []models.Customer
	require.NoError(t, sonic.Unmarshal([]byte(batchCustomers), &customers))

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	traceparent, err := telemetry.NewTraceparent()
	require.NoError(t, err)

	client := payment.NewPaymentClient(server.URL+"/charges", "sk_test_123", traceparent, 2*time.Second, 16, logger)
	service := payment.NewPaymentService(client, payment.PlaceholderAmounts{})
	notifier := &recordingNotifier{}
	processor := processors.NewPaymentProcessor(service, notifier, telemetry.NewMetrics(), logger)

	summary := NewOrchestrator(processor, logger).ProcessAll(context.Background(), customers)

	assert.Equal(t, Summary{Total: 5, Succeeded: 1, Failed: 4}, summary)

	sort.Slice(notifier.notices, func(i, j int) bool {
		return notifier.notices[i].customerID < notifier.notices[j].customerID
	})
	assert.Equal(t, []sentNotice{
		{customerID: 1, last4: "4242"},
		{customerID: 3, last4: "7890"},
	}, notifier.notices)

	successes := logs.FilterMessage("Successfully processed payment for customer").All()
	require.Len(t, successes, 1)
	assert.Equal(t, int64(2), successes[0].ContextMap()["customer_id"])

	assert.Equal(t, 4, logs.FilterMessage("The payment failed to process").Len())
	assert.Equal(t, 1, logs.FilterMessage("Error calling payment API").Len())
}
