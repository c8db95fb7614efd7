package workers

import (
	"context"
	"fmt"

	"francoggm/batch-charger/internal/app/workers/processors"
	"francoggm/batch-charger/internal/models"
)

type worker struct {
	id              int
	eventsProcessor processors.Processor
}

func newWorker(id int, eventsProcessor processors.Processor) *worker {
	return &worker{
		id:              id,
		eventsProcessor: eventsProcessor,
	}
}

// process runs one attempt. A panic is turned into that attempt's error so it
// never reaches the other workers of the batch.
func (w *worker) process(ctx context.Context, customer *models.Customer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d: panic processing customer %d: %v", w.id, customer.ID, r)
		}
	}()

	return w.eventsProcessor.ProcessEvent(ctx, customer)
}
