package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lapanasystem/lapana-api/internal/application/auth"
	"github.com/lapanasystem/lapana-api/internal/application/sales"
	"github.com/lapanasystem/lapana-api/internal/application/usecase"
	infrapdf "github.com/lapanasystem/lapana-api/internal/infrastructure/pdf"
	"github.com/lapanasystem/lapana-api/internal/infrastructure/postgres"
	httpRouter "github.com/lapanasystem/lapana-api/internal/interfaces/http"
	"github.com/lapanasystem/lapana-api/pkg/config"
	"github.com/lapanasystem/lapana-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	collectRepo := postgres.NewCollectRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, customerRepo, productRepo, receiptGenerator)
	returnUC := sales.NewReturnUseCase(txRunner, returnRepo)
	collectUC := sales.NewCollectUseCase(txRunner, collectRepo)
	balanceUC := sales.NewBalanceUseCase(balanceRepo, customerRepo)
	statsUC := sales.NewStatisticsUseCase(statsRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CustomerUC: customerUC,
		CreateSale: createSaleUC,
		SaleUC:     saleUC,
		ReturnUC:   returnUC,
		CollectUC:  collectUC,
		BalanceUC:  balanceUC,
		StatsUC:    statsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
