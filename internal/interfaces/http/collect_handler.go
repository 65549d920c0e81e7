package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
)

// CollectHandler maneja las peticiones HTTP para cobros (protegido).
type CollectHandler struct {
	uc *sales.CollectUseCase
}

// NewCollectHandler construye el handler.
func NewCollectHandler(uc *sales.CollectUseCase) *CollectHandler {
	return &CollectHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cobro
// @Tags         collects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCollectRequest  true  "Datos del cobro"
// @Success      201   {object}  dto.CollectResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/collects [post]
func (h *CollectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollectRequest
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
// @Summary      Listar cobros
// @Tags         collects
// @Security     Bearer
// @Produce      json
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Param        ordering    query  string  false  "date | total (con signo -)"
// @Param        customer    query  string  false  "ID del cliente"
// @Param        date        query  string  false  "Día puntual YYYY-MM-DD"
// @Param        start_date  query  string  false  "Desde YYYY-MM-DD"
// @Param        end_date    query  string  false  "Hasta YYYY-MM-DD"
// @Success      200  {object}  dto.PageResponse[dto.CollectResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/collects [get]
func (h *CollectHandler) List(c *fiber.Ctx) error {
	var q dto.CollectListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
