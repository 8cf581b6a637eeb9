package enums

// PaymentStatus reflects how much of a sale has been collected.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPending PaymentStatus = "pending"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPaid:    "Pagado",
	PaymentStatusPartial: "Pago Parcial",
	PaymentStatusPending: "Pendiente",
}

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	return string(s)
}

// Label returns the display name.
func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether the value is a known PaymentStatus.
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentStatusLabels[s]
	return ok
}
