package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/puntotecno/terminal/internal/orders"
	pkgerrors "github.com/puntotecno/terminal/pkg/errors"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
)

const basePath = "/orders/customers/"

// Customer is a registered shop customer.
type Customer struct {
	ID             int64     `json:"id"`
	DNI            string    `json:"dni"`
	CustomerNumber string    `json:"customer_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	OrdersCount    int       `json:"orders_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// CustomerInput is the writable subset sent on create and update.
type CustomerInput struct {
	DNI       string `json:"dni" validate:"required,max=20"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
}

// Service maps customer operations onto the remote API.
type Service interface {
	List(ctx context.Context, params rest.ListParams) (rest.Page[Customer], error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, input CustomerInput) (*Customer, error)
	Update(ctx context.Context, id int64, input CustomerInput) (*Customer, error)
	Delete(ctx context.Context, id int64) error
	Orders(ctx context.Context, id int64) ([]orders.RepairOrder, error)
}

type service struct {
	api      *rest.Client
	logg     *logger.Logger
	validate *validator.Validate
}

// NewService builds the customer record service.
func NewService(api *rest.Client, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{api: api, logg: logg, validate: validator.New()}, nil
}

func (s *service) List(ctx context.Context, params rest.ListParams) (rest.Page[Customer], error) {
	return rest.GetPage[Customer](ctx, s.api, basePath, params.Query())
}

func (s *service) Get(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := s.api.Get(ctx, fmt.Sprintf("%s%d/", basePath, id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *service) Create(ctx context.Context, input CustomerInput) (*Customer, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "el cliente no es válido")
	}
	var customer Customer
	if err := s.api.Post(ctx, basePath, input, &customer); err != nil {
		return nil, err
	}
	s.logg.Info(ctx, fmt.Sprintf("customer %s registered", customer.FullName))
	return &customer, nil
}

func (s *service) Update(ctx context.Context, id int64, input CustomerInput) (*Customer, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "el cliente no es válido")
	}
	var customer Customer
	if err := s.api.Patch(ctx, fmt.Sprintf("%s%d/", basePath, id), input, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete removes a customer. The server rejects customers that still have
// repair orders; that surfaces here as a validation error with the server
// wording.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("%s%d/", basePath, id))
}

// Orders returns every repair order of one customer.
func (s *service) Orders(ctx context.Context, id int64) ([]orders.RepairOrder, error) {
	page, err := rest.GetPage[orders.RepairOrder](ctx, s.api, fmt.Sprintf("%s%d/orders/", basePath, id), nil)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
