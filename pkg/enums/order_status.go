package enums

import "fmt"

// OrderStatus is the lifecycle label of a repair order.
type OrderStatus string

const (
	OrderStatusReceived    OrderStatus = "received"
	OrderStatusInService   OrderStatus = "in_service"
	OrderStatusRepaired    OrderStatus = "repaired"
	OrderStatusNotRepaired OrderStatus = "not_repaired"
	OrderStatusNotSolved   OrderStatus = "not_solved"
	OrderStatusReady       OrderStatus = "ready"
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

// OrderStatuses lists every status in canonical declaration order.
var OrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusInService,
	OrderStatusRepaired,
	OrderStatusNotRepaired,
	OrderStatusNotSolved,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusReceived:    "Recibido",
	OrderStatusInService:   "En Servicio",
	OrderStatusRepaired:    "Reparado",
	OrderStatusNotRepaired: "No Reparado",
	OrderStatusNotSolved:   "No Solucionado",
	OrderStatusReady:       "Listo para Entrega",
	OrderStatusDelivered:   "Entregado",
	OrderStatusCancelled:   "Cancelado",
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// Label returns the display name shown on tickets and screens.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// IsTerminal reports whether the status ends the order lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status %q", value)
	}
	return status, nil
}
