package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lapanasystem/lapana-api/internal/application/dto"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP para ventas (protegido).
type SaleHandler struct {
	createUC  *sales.CreateSaleUseCase
	saleUC    *sales.SaleUseCase
	statsUC   *sales.StatisticsUseCase
	balanceUC *sales.BalanceUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, saleUC *sales.SaleUseCase, statsUC *sales.StatisticsUseCase, balanceUC *sales.BalanceUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, saleUC: saleUC, statsUC: statsUC, balanceUC: balanceUC}
}

// Create godoc
// @Summary      Crear venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Param        ordering        query  string  false  "date | total | created_at (con signo -)"
// @Param        customer        query  string  false  "ID del cliente"
// @Param        sale_type       query  string  false  "retail | wholesale"
// @Param        state           query  string  false  "pending_delivery | delivered"
// @Param        payment_state   query  string  false  "unpaid | partially_paid | paid"
// @Param        payment_method  query  string  false  "Método de pago"
// @Param        search          query  string  false  "Busca por nombre de cliente"
// @Param        date            query  string  false  "Día puntual YYYY-MM-DD"
// @Param        start_date      query  string  false  "Desde YYYY-MM-DD"
// @Param        end_date        query  string  false  "Hasta YYYY-MM-DD"
// @Param        min_total       query  string  false  "Total mínimo"
// @Param        max_total       query  string  false  "Total máximo"
// @Success      200  {object}  dto.PageResponse[dto.SaleResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.saleUC.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.saleUC.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkAsDelivered godoc
// @Summary      Marcar venta como entregada
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/mark-as-delivered [post]
func (h *SaleHandler) MarkAsDelivered(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.saleUC.MarkAsDelivered(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.saleUC.Receipt(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

// Statistics godoc
// @Summary      Estadísticas de ventas del período
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start_date    query  string  true   "Desde YYYY-MM-DD"
// @Param        end_date      query  string  true   "Hasta YYYY-MM-DD"
// @Param        product_slug  query  string  false  "Restringe a ventas que incluyan el producto"
// @Success      200  {object}  dto.StatisticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/statistics [get]
func (h *SaleHandler) Statistics(c *fiber.Ctx) error {
	var q dto.StatisticsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.statsUC.Compute(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCustomerForCollect godoc
// @Summary      Clientes con saldo pendiente de cobro
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Param        ordering  query  string  false  "balance | name (con signo -)"
// @Success      200  {object}  dto.PageResponse[dto.PendingCustomerResponse]
// @Router       /api/sales/list-by-customer-for-collect [get]
func (h *SaleHandler) ListByCustomerForCollect(c *fiber.Ctx) error {
	var q dto.PendingCollectionQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.balanceUC.ListPendingCollection(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
