package models

import "github.com/shopspring/decimal"

type Customer struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name,omitempty"`
	Email          string              `json:"email,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	AmountDue      decimal.NullDecimal `json:"amountDue"`
	PaymentMethods PaymentMethods      `json:"paymentMethods"`
}
