package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/domain"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
	"github.com/lapanasystem/lapana-api/internal/domain/query"
	"github.com/lapanasystem/lapana-api/internal/domain/repository"
	"github.com/lapanasystem/lapana-api/pkg/slug"
	"github.com/lapanasystem/lapana-api/pkg/validator"
)

// ProductUseCase casos de uso CRUD del catálogo. Los precios son los vigentes;
// las ventas ya registradas conservan su snapshot.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con slug derivado del nombre.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.RetailPrice.IsNegative() || in.WholesalePrice.IsNegative() || in.Weight.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByBarcode(ctx, in.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.WeightUnit == "" {
		in.WeightUnit = entity.WeightUnitGrams
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Barcode:        in.Barcode,
		Name:           in.Name,
		Slug:           slug.Make(in.Name),
		RetailPrice:    in.RetailPrice,
		WholesalePrice: in.WholesalePrice,
		Weight:         in.Weight,
		WeightUnit:     in.WeightUnit,
		Category:       in.Category,
		Brand:          in.Brand,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista el catálogo con orden permitido (name, retail_price, created_at).
func (uc *ProductUseCase) List(ctx context.Context, raw dto.ProductListQuery) (*dto.PageResponse[*dto.ProductResponse], error) {
	order, err := query.ProductOrdering(raw.Ordering)
	if err != nil {
		return nil, err
	}
	page := query.DefaultPage(raw.Limit, raw.Offset)

	items, total, err := uc.repo.List(ctx, order, page)
	if err != nil {
		return nil, err
	}
	out := &dto.PageResponse[*dto.ProductResponse]{
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
		Items:  make([]*dto.ProductResponse, len(items)),
	}
	for i, p := range items {
		out.Items[i] = toProductResponse(p)
	}
	return out, nil
}

// Update actualiza precios y datos descriptivos. El barcode no se modifica;
// las ventas previas conservan el precio congelado en su detalle.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.RetailPrice.IsNegative() || in.WholesalePrice.IsNegative() || in.Weight.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.Name = in.Name
	product.Slug = slug.Make(in.Name)
	product.RetailPrice = in.RetailPrice
	product.WholesalePrice = in.WholesalePrice
	product.Weight = in.Weight
	if in.WeightUnit != "" {
		product.WeightUnit = in.WeightUnit
	}
	product.Category = in.Category
	product.Brand = in.Brand
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Barcode:        p.Barcode,
		Name:           p.Name,
		Slug:           p.Slug,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		Weight:         p.Weight,
		WeightUnit:     p.WeightUnit,
		Category:       p.Category,
		Brand:          p.Brand,
		CreatedAt:      p.CreatedAt,
	}
}
