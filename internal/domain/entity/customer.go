package entity

import "time"

// Tipos de cliente; deben coincidir con el sale_type de las ventas que se le facturan.
const (
	CustomerTypeRetail    = "retail"
	CustomerTypeWholesale = "wholesale"
)

// Customer representa un cliente de la panadería.
// El saldo pendiente NO se almacena: se deriva de ventas, devoluciones y cobros.
type Customer struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	Address      string
	CustomerType string // "retail" | "wholesale"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
