package workers

import (
	"context"
	"sync"
	"sync/atomic"

	"francoggm/batch-charger/internal/app/workers/processors"
	"francoggm/batch-charger/internal/models"

	"go.uber.org/zap"
)

type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

type Orchestrator struct {
	eventsProcessor processors.Processor
	logger          *zap.Logger
}

func NewOrchestrator(eventsProcessor processors.Processor, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		eventsProcessor: eventsProcessor,
		logger:          logger,
	}
}

// ProcessAll starts one worker per customer at once and waits for all of
// them. Failures are logged per customer and never fail the batch.
func (o *Orchestrator) ProcessAll(ctx context.Context, customers []models.Customer) Summary {
	var (
		wg                sync.WaitGroup
		succeeded, failed atomic.Int64
	)

	for id := range customers {
		customer := &customers[id]
		w := newWorker(id, o.eventsProcessor)

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := w.process(ctx, customer); err != nil {
				failed.Add(1)
				o.logger.Error("The payment failed to process",
					zap.Int64("customer_id", customer.ID),
					zap.Error(err),
				)
				return
			}

			succeeded.Add(1)
		}()
	}

	wg.Wait()

	return Summary{
		Total:     len(customers),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}
}
