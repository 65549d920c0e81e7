package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Filtros y rangos de consulta.
	ErrInvalidFilter = errors.New("filtro inválido")
	ErrInvalidRange  = errors.New("rango inválido")

	// Máquina de estados de entrega: solo pendiente_entrega → entregada.
	ErrInvalidStateTransition = errors.New("transición de estado inválida")

	// Devoluciones: la cantidad acumulada supera lo vendido originalmente.
	ErrOverReturn = errors.New("la cantidad devuelta supera la cantidad vendida")

	// Cobros: el pago excede el saldo pendiente del cliente.
	ErrPaymentExceedsBalance = errors.New("el cobro excede el saldo pendiente")

	// Conflicto de concurrencia (chequeo optimista/serialización); seguro de reintentar.
	ErrConflict = errors.New("conflicto de concurrencia")

	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)
