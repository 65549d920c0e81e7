package dto

// PageResponse sobre de página para todos los listados: total de registros
// que matchean el filtro más la página pedida.
type PageResponse[T any] struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Items  []T `json:"items"`
}

// ErrorResponse cuerpo de error HTTP con código legible por máquina.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
