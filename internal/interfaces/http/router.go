package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lapanasystem/lapana-api/internal/application/auth"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
	"github.com/lapanasystem/lapana-api/internal/application/usecase"
	"github.com/lapanasystem/lapana-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	CreateSale *sales.CreateSaleUseCase
	SaleUC     *sales.SaleUseCase
	ReturnUC   *sales.ReturnUseCase
	CollectUC  *sales.CollectUseCase
	BalanceUC  *sales.BalanceUseCase
	StatsUC    *sales.StatisticsUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	deliveryOrAdmin := RequireRole(entity.RoleAdmin, entity.RoleDelivery)

	// Catálogo (lectura para todos; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.BalanceUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/balance", customerHandler.Balance)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC, deps.StatsUC, deps.BalanceUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	// Rutas fijas antes que /:id para que Fiber no las capture como parámetro.
	salesGroup.Get("/statistics", saleHandler.Statistics)
	salesGroup.Get("/list-by-customer-for-collect", saleHandler.ListByCustomerForCollect)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/mark-as-delivered", deliveryOrAdmin, saleHandler.MarkAsDelivered)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Devoluciones
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returns.Post("/", returnHandler.Create)
	returns.Get("/", returnHandler.List)

	// Cobros
	collects := protected.Group("/collects")
	collectHandler := NewCollectHandler(deps.CollectUC)
	collects.Post("/", collectHandler.Create)
	collects.Get("/", collectHandler.List)
}
