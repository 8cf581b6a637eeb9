package inventory

import (
	"time"

	"github.com/puntotecno/terminal/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is a stock item as the remote API records it.
type Product struct {
	ID           int64           `json:"id"`
	Category     int64           `json:"category"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku"`
	Quantity     int             `json:"quantity"`
	MinStock     int             `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	IsActive     bool            `json:"is_active"`
	IsLowStock   bool            `json:"is_low_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductInput is the writable subset sent on create and update.
type ProductInput struct {
	Category    int64           `json:"category" validate:"required,gt=0"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	SKU         string          `json:"sku" validate:"required,max=50"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	MinStock    int             `json:"min_stock" validate:"gte=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	IsActive    bool            `json:"is_active"`
}

// Category groups products.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovement is one recorded stock change. The server computes the
// previous and new quantities; clients only send type, quantity and reason.
type StockMovement struct {
	ID                  int64              `json:"id"`
	Product             int64              `json:"product"`
	ProductName         string             `json:"product_name"`
	MovementType        enums.MovementType `json:"movement_type"`
	MovementTypeDisplay string             `json:"movement_type_display"`
	Quantity            int                `json:"quantity"`
	PreviousQuantity    int                `json:"previous_quantity"`
	NewQuantity         int                `json:"new_quantity"`
	Reason              string             `json:"reason"`
	User                *int64             `json:"user"`
	UserName            string             `json:"user_name"`
	CreatedAt           time.Time          `json:"created_at"`
}

// Statistics summarizes the whole inventory.
type Statistics struct {
	TotalProducts       int             `json:"total_products"`
	LowStockCount       int             `json:"low_stock_count"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	CategoriesCount     int             `json:"categories_count"`
}
