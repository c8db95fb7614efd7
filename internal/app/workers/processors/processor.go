package processors

import (
	"context"

	"francoggm/batch-charger/internal/models"
)

type Processor interface {
	ProcessEvent(ctx context.Context, customer *models.Customer) error
}
