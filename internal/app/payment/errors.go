package payment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

const declineMessage = "Payment Failed"

var (
	ErrPaymentDeclined = errors.New(declineMessage)
	ErrPaymentRejected = errors.New("payment rejected")
	ErrNoAmountDue     = errors.New("customer has no amount due")
	ErrInvalidAmount   = errors.New("amount must be positive")
)

// APIError is a non-2xx answer from the payment API.
type APIError struct {
	StatusCode  int
	Type        string
	Code        string
	DeclineCode string
	Message     string
}

// Declined reports whether the API rejected the charge because of the payment
// instrument. Structured fields win; the status code and the message text are
// fallbacks for APIs that do not send them.
func (e *APIError) Declined() bool {
	if e.Type == "card_error" || e.Code == "card_declined" || e.DeclineCode != "" {
		return true
	}

	if e.StatusCode == http.StatusPaymentRequired {
		return true
	}

	return e.Message == declineMessage
}

func (e *APIError) Error() string {
	if e.Declined() {
		return declineMessage
	}

	if e.Message == "" {
		return fmt.Sprintf("payment API returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("payment API returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Declined() {
		return ErrPaymentDeclined
	}

	return ErrPaymentRejected
}

type apiErrorBody struct {
	Error *struct {
		Type        string `json:"type"`
		Code        string `json:"code"`
		DeclineCode string `json:"decline_code"`
		Message     string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// statusReject turns a failed response into an APIError. Bodies that do not
// follow the error envelope still produce a status-only error.
func statusReject(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var envelope apiErrorBody
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}

	apiErr.Message = envelope.Message
	if envelope.Error != nil {
		apiErr.Type = envelope.Error.Type
		apiErr.Code = envelope.Error.Code
		apiErr.DeclineCode = envelope.Error.DeclineCode
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
	}

	return apiErr
}
