package models

type ChargeRequest struct {
	CustomerID    int64         `json:"customerId"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	Amount        string        `json:"amount"`
}

type ChargeResponse struct {
	StatusCode int
	Body       any
}
