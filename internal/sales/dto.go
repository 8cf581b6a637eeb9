package sales

import (
	"time"

	"github.com/puntotecno/terminal/pkg/enums"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the composed payload sent when a cart is submitted.
type CreateSaleRequest struct {
	Customer      *int64              `json:"customer" validate:"omitempty,gt=0"`
	CustomerName  string              `json:"customer_name" validate:"max=200"`
	Discount      decimal.Decimal     `json:"discount"`
	PaymentMethod enums.PaymentMethod `json:"payment_method" validate:"required"`
	PaidAmount    *decimal.Decimal    `json:"paid_amount,omitempty"`
	Notes         string              `json:"notes"`
	Items         []SaleItemRequest   `json:"items" validate:"required,min=1,dive"`
}

// SaleItemRequest is one cart line on the wire.
type SaleItemRequest struct {
	Product   int64           `json:"product" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Sale is the ticket as the remote API records it.
type Sale struct {
	ID            int64               `json:"id"`
	SaleNumber    string              `json:"sale_number"`
	Date          time.Time           `json:"date"`
	Customer      *int64              `json:"customer"`
	CustomerName  string              `json:"customer_name"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	Balance       decimal.Decimal     `json:"balance"`
	Notes         string              `json:"notes"`
	Items         []SaleItem          `json:"items"`
}

// SaleItem is one recorded line of a sale.
type SaleItem struct {
	ID          int64           `json:"id"`
	Product     int64           `json:"product"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentBreakdown aggregates sales per payment method in reports.
type PaymentBreakdown struct {
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Count         int                 `json:"count"`
	Total         decimal.Decimal     `json:"total"`
}

// DailyReport summarizes one day of sales.
type DailyReport struct {
	Date            string             `json:"date"`
	Count           int                `json:"count"`
	Total           decimal.Decimal    `json:"total"`
	ByPaymentMethod []PaymentBreakdown `json:"by_payment_method"`
}

// Dashboard carries the aggregates shown on the sales dashboard.
type Dashboard struct {
	TodayCount     int                `json:"today_count"`
	TodayTotal     decimal.Decimal    `json:"today_total"`
	MonthCount     int                `json:"month_count"`
	MonthTotal     decimal.Decimal    `json:"month_total"`
	PaymentMethods []PaymentBreakdown `json:"payment_methods"`
}
