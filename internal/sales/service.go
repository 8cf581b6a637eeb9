package sales

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
	"github.com/shopspring/decimal"
)

const basePath = "/sales/sales/"

// Service maps sale operations onto the remote API.
type Service interface {
	Create(ctx context.Context, req CreateSaleRequest) (*Sale, error)
	Get(ctx context.Context, id int64) (*Sale, error)
	List(ctx context.Context, params ListParams) (rest.Page[Sale], error)
	RegisterPayment(ctx context.Context, id int64, amount decimal.Decimal) (*Sale, error)
	DailyReport(ctx context.Context, date string) (*DailyReport, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

// ListParams filter the sales listing.
type ListParams struct {
	rest.ListParams
	PaymentMethod string
	PaymentStatus string
}

func (p ListParams) query() url.Values {
	query := p.Query()
	if p.PaymentMethod != "" {
		query.Set("payment_method", p.PaymentMethod)
	}
	if p.PaymentStatus != "" {
		query.Set("payment_status", p.PaymentStatus)
	}
	return query
}

type service struct {
	api      *rest.Client
	logg     *logger.Logger
	validate *validator.Validate
}

// NewService builds the sales record service.
func NewService(api *rest.Client, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{api: api, logg: logg, validate: validator.New()}, nil
}

// Create validates and submits the composed sale. Stock violations at
// commit time come back from the server as regular remote errors.
func (s *service) Create(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "la venta no es válida")
	}
	if req.Customer != nil && req.CustomerName != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cliente registrado y nombre libre son excluyentes")
	}
	if req.Discount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el descuento no puede ser negativo")
	}
	if req.PaidAmount != nil && req.PaidAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el monto pagado no puede ser negativo")
	}
	for _, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "el precio unitario no puede ser negativo")
		}
	}

	var sale Sale
	if err := s.api.Post(ctx, basePath, req, &sale); err != nil {
		return nil, err
	}
	s.logg.Info(ctx, fmt.Sprintf("sale %s registered", sale.SaleNumber))
	return &sale, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Sale, error) {
	var sale Sale
	if err := s.api.Get(ctx, fmt.Sprintf("%s%d/", basePath, id), nil, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *service) List(ctx context.Context, params ListParams) (rest.Page[Sale], error) {
	return rest.GetPage[Sale](ctx, s.api, basePath, params.query())
}

// RegisterPayment records a payment against the pending balance of a
// deferred (account) sale.
func (s *service) RegisterPayment(ctx context.Context, id int64, amount decimal.Decimal) (*Sale, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el monto a registrar debe ser mayor a cero")
	}
	var sale Sale
	path := fmt.Sprintf("%s%d/register_payment/", basePath, id)
	if err := s.api.Post(ctx, path, map[string]decimal.Decimal{"amount": amount}, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *service) DailyReport(ctx context.Context, date string) (*DailyReport, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var report DailyReport
	if err := s.api.Get(ctx, basePath+"daily_report/", query, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	if err := s.api.Get(ctx, basePath+"dashboard/", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
