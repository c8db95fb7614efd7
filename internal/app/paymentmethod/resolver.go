package paymentmethod

import "francoggm/batch-charger/internal/models"

// Last4 returns the last four digits of the customer's default payment
// method. It returns an empty string when the default kind is unknown or has
// no payload, so a notification can still go out without the identifier.
func Last4(customer *models.Customer) string {
	method, ok := customer.PaymentMethods.DefaultMethod()
	if !ok {
		return ""
	}

	switch customer.PaymentMethods.Default {
	case models.KindCard:
		if card, ok := method.(models.CardPaymentMethod); ok {
			return card.Last4.String()
		}
	case models.KindUSBankAccount:
		if account, ok := method.(models.USBankAccountPaymentMethod); ok {
			return account.AccountNumberLast4Digits
		}
	case models.KindEUPayByBank:
		if payByBank, ok := method.(models.EUPayByBankPaymentMethod); ok {
			return payByBank.IBANLast4
		}
	}

	return ""
}

// Describe returns the label used for a payment method kind in customer messages.
func Describe(kind models.PaymentMethodKind) string {
	switch kind {
	case models.KindCard:
		return "card"
	case models.KindUSBankAccount:
		return "bank account"
	case models.KindEUPayByBank:
		return "pay-by-bank account"
	}

	return "payment method"
}
