package notification

import (
	"fmt"
	"time"

	"francoggm/batch-charger/internal/app/paymentmethod"
	"francoggm/batch-charger/internal/models"
)

type DeclineNotice struct {
	CustomerID    int64                    `json:"customerId"`
	Name          string                   `json:"name,omitempty"`
	Email         string                   `json:"email,omitempty"`
	Phone         string                   `json:"phone,omitempty"`
	PaymentMethod models.PaymentMethodKind `json:"paymentMethod"`
	Last4Digits   string                   `json:"last4Digits"`
	Message       string                   `json:"message"`
	SentAt        time.Time                `json:"sentAt"`
}

func NewDeclineNotice(customer *models.Customer, last4 string) DeclineNotice {
	kind := customer.PaymentMethods.Default
	label := paymentmethod.Describe(kind)

	message := fmt.Sprintf("We could not process your payment with your %s. Please update your payment details.", label)
	if last4 != "" {
		message = fmt.Sprintf("We could not process your payment with the %s ending in %s. Please update your payment details.", label, last4)
	}

	return DeclineNotice{
		CustomerID:    customer.ID,
		Name:          customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		PaymentMethod: kind,
		Last4Digits:   last4,
		Message:       message,
		SentAt:        time.Now().UTC(),
	}
}
