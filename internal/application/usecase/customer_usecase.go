package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
	"github.com/lapanasystem/lapana-api/pkg/validator"
)

// CustomerUseCase casos de uso CRUD para clientes. El saldo pendiente no vive
// acá: lo deriva el motor de saldos desde el libro.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. El email se normaliza a minúsculas para que la
// unicidad sea case-insensitive.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		CustomerType: in.CustomerType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, raw dto.CustomerListQuery) (*dto.PageResponse[*dto.CustomerResponse], error) {
	page := query.DefaultPage(raw.Limit, raw.Offset)
	items, total, err := uc.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	out := &dto.PageResponse[*dto.CustomerResponse]{
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
		Items:  make([]*dto.CustomerResponse, len(items)),
	}
	for i, c := range items {
		out.Items[i] = toCustomerResponse(c)
	}
	return out, nil
}

// Update actualiza los datos de contacto. El customer_type no se cambia: las
// ventas históricas del cliente se facturaron bajo ese tipo.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	customer.Name = in.Name
	customer.Email = strings.ToLower(in.Email)
	customer.PhoneNumber = in.PhoneNumber
	customer.Address = in.Address
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		Address:      c.Address,
		CustomerType: c.CustomerType,
		CreatedAt:    c.CreatedAt,
	}
}
