package enums

import "fmt"

// PaymentMethod describes how a sale is settled.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMultiple PaymentMethod = "multiple"
	PaymentMethodAccount  PaymentMethod = "account"

	// PaymentMethodNotPaid appears on repair orders only, never on sales.
	PaymentMethodNotPaid PaymentMethod = "not_paid"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash:     "Efectivo",
	PaymentMethodCard:     "Tarjeta",
	PaymentMethodTransfer: "Transferencia",
	PaymentMethodMultiple: "Múltiple",
	PaymentMethodAccount:  "Cuenta Corriente",
	PaymentMethodNotPaid:  "Sin Abonar",
}

// PaymentMethods lists the methods a sale can be settled with, in display
// order. Excludes not_paid, which only repair orders carry.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodTransfer,
	PaymentMethodMultiple,
	PaymentMethodAccount,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// Label returns the display name.
func (p PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[p]; ok {
		return label
	}
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[p]
	return ok
}

// Deferred reports whether the method leaves a balance on the customer
// account, which makes the partial paid amount meaningful.
func (p PaymentMethod) Deferred() bool {
	return p == PaymentMethodAccount
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	method := PaymentMethod(value)
	if !method.IsValid() {
		return "", fmt.Errorf("invalid payment method %q", value)
	}
	return method, nil
}
