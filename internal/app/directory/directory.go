package directory

import (
	"fmt"
	"os"

	"francoggm/batch-charger/internal/models"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// LoadCustomers reads the customer list exported by the customer directory.
// The file is a JSON array and is loaded whole. Payment methods that do not
// fit their kind are logged and kept; the customer is still charged.
func LoadCustomers(path string, logger *zap.Logger) ([]models.Customer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers file: %w", err)
	}

	customers, err := DecodeCustomers(data)
	if err != nil {
		return nil, err
	}

	for i := range customers {
		for _, invalid := range customers[i].PaymentMethods.Invalid {
			logger.Warn("Invalid payment method in customer record",
				zap.Int64("customer_id", customers[i].ID),
				zap.Error(invalid),
			)
		}
	}

	return customers, nil
}

func DecodeCustomers(data []byte) ([]models.Customer, error) {
	var customers []models.Customer
	if err := sonic.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customers: %w", err)
	}

	return customers, nil
}
