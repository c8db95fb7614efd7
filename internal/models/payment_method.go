package models

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

type PaymentMethodKind string

const (
	KindCard          PaymentMethodKind = "card"
	KindUSBankAccount PaymentMethodKind = "usBankAccount"
	KindEUPayByBank   PaymentMethodKind = "eu_pay_by_bank"
)

const defaultPaymentMethodKey = "defaultPaymentMethod"

// PaymentMethod is one entry of a customer's payment methods record. The
// concrete type is selected by the record key it was decoded from.
type PaymentMethod interface {
	Kind() PaymentMethodKind
}

// The typed variants keep the payload they were decoded from in Raw and
// marshal back to it, so the stored record is forwarded byte for byte. The
// typed fields are only read locally.
type CardPaymentMethod struct {
	Last4    Last4Digits     `json:"last4"`
	Brand    string          `json:"brand,omitempty"`
	ExpMonth int             `json:"expMonth,omitempty"`
	ExpYear  int             `json:"expYear,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

func (CardPaymentMethod) Kind() PaymentMethodKind { return KindCard }

func (c CardPaymentMethod) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}

	type card CardPaymentMethod
	return sonic.Marshal(card(c))
}

type USBankAccountPaymentMethod struct {
	AccountNumberLast4Digits string          `json:"accountNumberLast4Digits"`
	BankName                 string          `json:"bankName,omitempty"`
	RoutingNumber            string          `json:"routingNumber,omitempty"`
	Raw                      json.RawMessage `json:"-"`
}

func (USBankAccountPaymentMethod) Kind() PaymentMethodKind { return KindUSBankAccount }

func (a USBankAccountPaymentMethod) MarshalJSON() ([]byte, error) {
	if len(a.Raw) > 0 {
		return a.Raw, nil
	}

	type account USBankAccountPaymentMethod
	return sonic.Marshal(account(a))
}

type EUPayByBankPaymentMethod struct {
	IBANLast4 string          `json:"iban_last_4"`
	BIC       string          `json:"bic,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

func (EUPayByBankPaymentMethod) Kind() PaymentMethodKind { return KindEUPayByBank }

func (e EUPayByBankPaymentMethod) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}

	type payByBank EUPayByBankPaymentMethod
	return sonic.Marshal(payByBank(e))
}

// UnknownPaymentMethod keeps the raw payload of kinds this service does not
// model, or of payloads that did not fit their kind, so they can still be
// forwarded to the payment API untouched.
type UnknownPaymentMethod struct {
	MethodKind PaymentMethodKind
	Raw        json.RawMessage
}

func (u UnknownPaymentMethod) Kind() PaymentMethodKind { return u.MethodKind }

func (u UnknownPaymentMethod) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return []byte("null"), nil
	}

	return u.Raw, nil
}

// PaymentMethods is the customer's payment methods record: one payload per
// kind plus the tag of the default one. Default is not guaranteed to be a key
// of Methods.
//
// A payload that does not decode into its kind's variant is kept as an
// UnknownPaymentMethod and its error is recorded in Invalid; one bad entry
// never rejects the record.
type PaymentMethods struct {
	Default PaymentMethodKind
	Methods map[PaymentMethodKind]PaymentMethod
	Invalid []error
}

func (p PaymentMethods) DefaultMethod() (PaymentMethod, bool) {
	method, ok := p.Methods[p.Default]
	return method, ok
}

func (p *PaymentMethods) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal payment methods: %w", err)
	}

	var (
		defaultKind PaymentMethodKind
		invalid     []error
	)
	methods := make(map[PaymentMethodKind]PaymentMethod, len(raw))

	for key, payload := range raw {
		if key == defaultPaymentMethodKey {
			var kind string
			if err := sonic.Unmarshal(payload, &kind); err != nil {
				invalid = append(invalid, fmt.Errorf("failed to unmarshal %s: %w", defaultPaymentMethodKey, err))
				continue
			}
			defaultKind = PaymentMethodKind(kind)
			continue
		}

		kind := PaymentMethodKind(key)
		method, err := decodePaymentMethod(kind, payload)
		if err != nil {
			invalid = append(invalid, err)
			method = UnknownPaymentMethod{MethodKind: kind, Raw: copyRaw(payload)}
		}
		methods[kind] = method
	}

	p.Default = defaultKind
	p.Methods = methods
	p.Invalid = invalid
	return nil
}

func (p PaymentMethods) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Methods)+1)
	for kind, method := range p.Methods {
		out[string(kind)] = method
	}
	out[defaultPaymentMethodKey] = p.Default

	return sonic.Marshal(out)
}

func decodePaymentMethod(kind PaymentMethodKind, payload json.RawMessage) (PaymentMethod, error) {
	var (
		method PaymentMethod
		err    error
	)

	switch kind {
	case KindCard:
		var card CardPaymentMethod
		err = sonic.Unmarshal(payload, &card)
		card.Raw = copyRaw(payload)
		method = card
	case KindUSBankAccount:
		var account USBankAccountPaymentMethod
		err = sonic.Unmarshal(payload, &account)
		account.Raw = copyRaw(payload)
		method = account
	case KindEUPayByBank:
		var payByBank EUPayByBankPaymentMethod
		err = sonic.Unmarshal(payload, &payByBank)
		payByBank.Raw = copyRaw(payload)
		method = payByBank
	default:
		method = UnknownPaymentMethod{MethodKind: kind, Raw: copyRaw(payload)}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payment method: %w", kind, err)
	}

	return method, nil
}

func copyRaw(payload json.RawMessage) json.RawMessage {
	raw := make(json.RawMessage, len(payload))
	copy(raw, payload)
	return raw
}

// Last4Digits accepts both a JSON number and a JSON string. Directories
// store card last4 as a number.
type Last4Digits string

func (d *Last4Digits) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Last4Digits(s)
		return nil
	}

	if !isDigits(string(data)) {
		return fmt.Errorf("invalid last4 value %s", data)
	}

	*d = Last4Digits(data)
	return nil
}

func (d Last4Digits) MarshalJSON() ([]byte, error) {
	s := string(d)
	if isDigits(s) && (len(s) == 1 || s[0] != '0') {
		return []byte(s), nil
	}

	return sonic.Marshal(s)
}

func (d Last4Digits) String() string {
	return string(d)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
