package inventory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
)

const (
	productsPath   = "/inventory/products/"
	categoriesPath = "/inventory/categories/"
	movementsPath  = "/inventory/stock-movements/"
)

// Service maps inventory operations onto the remote API. Write operations
// require the admin role server-side; the terminal additionally hides them
// from employees.
type Service interface {
	ListProducts(ctx context.Context, params ProductListParams) (rest.Page[Product], error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, movement enums.MovementType, quantity int, reason string) (*Product, error)
	LowStockAlerts(ctx context.Context) ([]Product, error)
	Statistics(ctx context.Context) (*Statistics, error)
	ListCategories(ctx context.Context, params rest.ListParams) (rest.Page[Category], error)
	ListMovements(ctx context.Context, params MovementListParams) (rest.Page[StockMovement], error)
}

// ProductListParams filter the product listing.
type ProductListParams struct {
	rest.ListParams
	Category int64
	LowStock bool
	Active   *bool
}

func (p ProductListParams) query() url.Values {
	query := p.Query()
	if p.Category > 0 {
		query.Set("category", fmt.Sprintf("%d", p.Category))
	}
	if p.LowStock {
		query.Set("low_stock", "true")
	}
	if p.Active != nil {
		query.Set("is_active", fmt.Sprintf("%t", *p.Active))
	}
	return query
}

// MovementListParams filter the stock movement listing.
type MovementListParams struct {
	rest.ListParams
	Product      int64
	MovementType string
}

func (p MovementListParams) query() url.Values {
	query := p.Query()
	if p.Product > 0 {
		query.Set("product", fmt.Sprintf("%d", p.Product))
	}
	if p.MovementType != "" {
		query.Set("movement_type", p.MovementType)
	}
	return query
}

type service struct {
	api      *rest.Client
	logg     *logger.Logger
	validate *validator.Validate
}

// NewService builds the inventory record service.
func NewService(api *rest.Client, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{api: api, logg: logg, validate: validator.New()}, nil
}

func (s *service) ListProducts(ctx context.Context, params ProductListParams) (rest.Page[Product], error) {
	return rest.GetPage[Product](ctx, s.api, productsPath, params.query())
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := s.api.Get(ctx, fmt.Sprintf("%s%d/", productsPath, id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	var product Product
	if err := s.api.Post(ctx, productsPath, input, &product); err != nil {
		return nil, err
	}
	s.logg.Info(ctx, fmt.Sprintf("product %s (SKU %s) created", product.Name, product.SKU))
	return &product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	var product Product
	if err := s.api.Patch(ctx, fmt.Sprintf("%s%d/", productsPath, id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("%s%d/", productsPath, id))
}

// UpdateStock records a stock movement and returns the product with the
// adjusted quantity.
func (s *service) UpdateStock(ctx context.Context, id int64, movement enums.MovementType, quantity int, reason string) (*Product, error) {
	if !movement.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tipo de movimiento %q desconocido", movement))
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "la cantidad del movimiento debe ser mayor a cero")
	}
	var product Product
	path := fmt.Sprintf("%s%d/update_stock/", productsPath, id)
	body := map[string]any{
		"movement_type": movement.String(),
		"quantity":      quantity,
		"reason":        reason,
	}
	if err := s.api.Post(ctx, path, body, &product); err != nil {
		return nil, err
	}
	s.logg.Info(ctx, fmt.Sprintf("stock %s %d on product %d", movement, quantity, id))
	return &product, nil
}

// LowStockAlerts returns active products at or below their minimum stock.
func (s *service) LowStockAlerts(ctx context.Context) ([]Product, error) {
	page, err := rest.GetPage[Product](ctx, s.api, productsPath+"low_stock_alerts/", nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := s.api.Get(ctx, productsPath+"statistics/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *service) ListCategories(ctx context.Context, params rest.ListParams) (rest.Page[Category], error) {
	return rest.GetPage[Category](ctx, s.api, categoriesPath, params.Query())
}

func (s *service) ListMovements(ctx context.Context, params MovementListParams) (rest.Page[StockMovement], error) {
	return rest.GetPage[StockMovement](ctx, s.api, movementsPath, params.query())
}

func (s *service) validateInput(input ProductInput) error {
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "el producto no es válido")
	}
	if input.UnitPrice.IsNegative() || input.SalePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "los precios no pueden ser negativos")
	}
	return nil
}
