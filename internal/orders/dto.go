package orders

import (
	"time"

	"github.com/puntotecno/terminal/pkg/enums"
	"github.com/shopspring/decimal"
)

// RepairOrder is a device intake ticket as the remote API records it.
// Costs are nullable until the technician fills them in; the delivery
// estimate travels as a plain YYYY-MM-DD date.
type RepairOrder struct {
	ID                  int64               `json:"id"`
	OrderNumber         string              `json:"order_number"`
	Customer            int64               `json:"customer"`
	CustomerName        string              `json:"customer_name"`
	CustomerPhone       string              `json:"customer_phone"`
	CustomerEmail       string              `json:"customer_email"`
	DeviceType          enums.DeviceType    `json:"device_type"`
	DeviceTypeDisplay   string              `json:"device_type_display"`
	DeviceBrand         string              `json:"device_brand"`
	DeviceModel         string              `json:"device_model"`
	DeviceColor         string              `json:"device_color"`
	DeviceSerial        string              `json:"device_serial"`
	SecurityData        string              `json:"security_data"`
	ProblemDescription  string              `json:"problem_description"`
	Diagnosis           string              `json:"diagnosis"`
	RepairNotes         string              `json:"repair_notes"`
	GeneralObservations string              `json:"general_observations"`
	Status              enums.OrderStatus   `json:"status"`
	StatusDisplay       string              `json:"status_display"`
	EstimatedCost       *decimal.Decimal    `json:"estimated_cost"`
	FinalCost           *decimal.Decimal    `json:"final_cost"`
	DepositAmount       decimal.Decimal     `json:"deposit_amount"`
	RemainingBalance    decimal.Decimal     `json:"remaining_balance"`
	PaymentMethod       enums.PaymentMethod `json:"payment_method"`
	AssignedTo          *int64              `json:"assigned_to"`
	AssignedToName      *string             `json:"assigned_to_name"`
	CreatedBy           *int64              `json:"created_by"`
	CreatedByName       *string             `json:"created_by_name"`
	ReceivedDate        time.Time           `json:"received_date"`
	EstimatedDelivery   string              `json:"estimated_delivery"`
	DeliveredDate       *time.Time          `json:"delivered_date"`
	UpdatedAt           time.Time           `json:"updated_at"`

	// Populated on detail fetches only.
	StatusHistory []StatusChange `json:"status_history,omitempty"`
}

// StatusChange is one entry of an order's status history.
type StatusChange struct {
	ID             int64             `json:"id"`
	Order          int64             `json:"order"`
	PreviousStatus enums.OrderStatus `json:"previous_status"`
	NewStatus      enums.OrderStatus `json:"new_status"`
	Notes          string            `json:"notes"`
	ChangedBy      *int64            `json:"changed_by"`
	ChangedByName  string            `json:"changed_by_name"`
	CreatedAt      time.Time         `json:"created_at"`
}

// OrderInput is the writable subset sent on create and update.
type OrderInput struct {
	Customer            int64               `json:"customer" validate:"required,gt=0"`
	DeviceType          enums.DeviceType    `json:"device_type" validate:"required"`
	DeviceBrand         string              `json:"device_brand" validate:"required,max=100"`
	DeviceModel         string              `json:"device_model" validate:"required,max=100"`
	DeviceColor         string              `json:"device_color" validate:"max=50"`
	DeviceSerial        string              `json:"device_serial" validate:"max=100"`
	SecurityData        string              `json:"security_data"`
	ProblemDescription  string              `json:"problem_description" validate:"required"`
	Diagnosis           string              `json:"diagnosis"`
	RepairNotes         string              `json:"repair_notes"`
	GeneralObservations string              `json:"general_observations"`
	Status              enums.OrderStatus   `json:"status,omitempty"`
	EstimatedCost       *decimal.Decimal    `json:"estimated_cost,omitempty"`
	FinalCost           *decimal.Decimal    `json:"final_cost,omitempty"`
	DepositAmount       decimal.Decimal     `json:"deposit_amount"`
	PaymentMethod       enums.PaymentMethod `json:"payment_method,omitempty"`
	AssignedTo          *int64              `json:"assigned_to,omitempty"`
	EstimatedDelivery   string              `json:"estimated_delivery,omitempty"`
}

// Dashboard carries the order counters shown on the home screen.
type Dashboard struct {
	TotalOrders      int                       `json:"total_orders"`
	InServiceCount   int                       `json:"in_service_count"`
	ReadyCount       int                       `json:"ready_count"`
	DeliveredCount   int                       `json:"delivered_count"`
	StatusBreakdown  map[enums.OrderStatus]int `json:"status_breakdown"`
	PendingOrders    int                       `json:"pending_orders"`
	OrdersThisMonth  int                       `json:"orders_this_month"`
	RevenueThisMonth decimal.Decimal           `json:"revenue_this_month"`
	UpcomingDue      int                       `json:"upcoming_due"`
}

// DailyLoad lists the orders received on one day.
type DailyLoad struct {
	Date   string        `json:"date"`
	Count  int           `json:"count"`
	Orders []RepairOrder `json:"orders"`
}
