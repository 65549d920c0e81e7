package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de peso del producto.
const (
	WeightUnitGrams = "g"
	WeightUnitKilos = "kg"
)

// Product representa un producto del catálogo de la panadería.
// RetailPrice y WholesalePrice son los precios vigentes: una venta congela el
// precio en su detalle al momento de crearse, por lo que cambios posteriores
// no afectan ventas ya registradas.
type Product struct {
	ID             string
	Barcode        string // único
	Name           string
	Slug           string // único, derivado del nombre
	RetailPrice    decimal.Decimal
	WholesalePrice decimal.Decimal
	Weight         decimal.Decimal
	WeightUnit     string // "g" | "kg"
	Category       string
	Brand          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PriceFor devuelve el precio vigente según el tipo de venta.
func (p *Product) PriceFor(saleType string) decimal.Decimal {
	if saleType == SaleTypeWholesale {
		return p.WholesalePrice
	}
	return p.RetailPrice
}
