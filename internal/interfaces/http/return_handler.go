package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
)

// ReturnHandler maneja las peticiones HTTP para devoluciones (protegido).
type ReturnHandler struct {
	uc *sales.ReturnUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *sales.ReturnUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar devolución contra una venta
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Datos de la devolución"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Param        ordering    query  string  false  "date | total | created_at (con signo -)"
// @Param        customer    query  string  false  "ID del cliente"
// @Param        search      query  string  false  "Busca por nombre de cliente"
// @Param        date        query  string  false  "Día puntual YYYY-MM-DD"
// @Param        start_date  query  string  false  "Desde YYYY-MM-DD"
// @Param        end_date    query  string  false  "Hasta YYYY-MM-DD"
// @Param        min_total   query  string  false  "Monto mínimo"
// @Param        max_total   query  string  false  "Monto máximo"
// @Success      200  {object}  dto.PageResponse[dto.ReturnResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	var q dto.ReturnListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
