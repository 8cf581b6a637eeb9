package orders

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/puntotecno/terminal/pkg/enums"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
	"github.com/shopspring/decimal"
)

const basePath = "/orders/orders/"

// Service maps repair order operations onto the remote API.
type Service interface {
	List(ctx context.Context, params ListParams) (rest.Page[RepairOrder], error)
	Get(ctx context.Context, id int64) (*RepairOrder, error)
	Create(ctx context.Context, input OrderInput) (*RepairOrder, error)
	Update(ctx context.Context, id int64, input OrderInput) (*RepairOrder, error)
	UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus, notes string) (*RepairOrder, error)
	AddPayment(ctx context.Context, id int64, amount decimal.Decimal) (*RepairOrder, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	MyOrders(ctx context.Context) ([]RepairOrder, error)
	DailyLoad(ctx context.Context, date string) (*DailyLoad, error)
}

// ListParams filter the order listing.
type ListParams struct {
	rest.ListParams
	Status     string
	DeviceType string
	AssignedTo int64
	DateFrom   string
	DateTo     string
}

func (p ListParams) query() url.Values {
	query := p.Query()
	if p.Status != "" {
		query.Set("status", p.Status)
	}
	if p.DeviceType != "" {
		query.Set("device_type", p.DeviceType)
	}
	if p.AssignedTo > 0 {
		query.Set("assigned_to", fmt.Sprintf("%d", p.AssignedTo))
	}
	if p.DateFrom != "" {
		query.Set("date_from", p.DateFrom)
	}
	if p.DateTo != "" {
		query.Set("date_to", p.DateTo)
	}
	return query
}

type service struct {
	api      *rest.Client
	logg     *logger.Logger
	validate *validator.Validate
}

// NewService builds the repair order record service.
func NewService(api *rest.Client, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{api: api, logg: logg, validate: validator.New()}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (rest.Page[RepairOrder], error) {
	return rest.GetPage[RepairOrder](ctx, s.api, basePath, params.query())
}

func (s *service) Get(ctx context.Context, id int64) (*RepairOrder, error) {
	var order RepairOrder
	if err := s.api.Get(ctx, fmt.Sprintf("%s%d/", basePath, id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *service) Create(ctx context.Context, input OrderInput) (*RepairOrder, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	var order RepairOrder
	if err := s.api.Post(ctx, basePath, input, &order); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID), fmt.Sprintf("order %s created", order.OrderNumber))
	return &order, nil
}

func (s *service) Update(ctx context.Context, id int64, input OrderInput) (*RepairOrder, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	var order RepairOrder
	if err := s.api.Patch(ctx, fmt.Sprintf("%s%d/", basePath, id), input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order to any status. The server records the change
// in the order's history with the given notes.
func (s *service) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus, notes string) (*RepairOrder, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("estado %q desconocido", status))
	}
	var order RepairOrder
	path := fmt.Sprintf("%s%d/update_status/", basePath, id)
	body := map[string]string{"status": status.String(), "notes": notes}
	if err := s.api.Post(ctx, path, body, &order); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithOrderID(ctx, id), fmt.Sprintf("order status set to %s", status))
	return &order, nil
}

// AddPayment registers a payment against an account order's balance.
func (s *service) AddPayment(ctx context.Context, id int64, amount decimal.Decimal) (*RepairOrder, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el monto a registrar debe ser mayor a cero")
	}
	var order RepairOrder
	path := fmt.Sprintf("%s%d/add_payment/", basePath, id)
	if err := s.api.Post(ctx, path, map[string]decimal.Decimal{"amount": amount}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	if err := s.api.Get(ctx, basePath+"dashboard/", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// MyOrders returns the open orders assigned to the logged-in user.
func (s *service) MyOrders(ctx context.Context) ([]RepairOrder, error) {
	page, err := rest.GetPage[RepairOrder](ctx, s.api, basePath+"my_orders/", nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *service) DailyLoad(ctx context.Context, date string) (*DailyLoad, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var load DailyLoad
	if err := s.api.Get(ctx, basePath+"daily_load/", query, &load); err != nil {
		return nil, err
	}
	return &load, nil
}

func (s *service) validateInput(input OrderInput) error {
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "la orden no es válida")
	}
	if !input.DeviceType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tipo de dispositivo %q desconocido", input.DeviceType))
	}
	if input.Status != "" && !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("estado %q desconocido", input.Status))
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("método de pago %q desconocido", input.PaymentMethod))
	}
	if input.DepositAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "la seña no puede ser negativa")
	}
	if input.EstimatedCost != nil && input.EstimatedCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "el costo estimado no puede ser negativo")
	}
	if input.FinalCost != nil && input.FinalCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "el costo final no puede ser negativo")
	}
	return nil
}
