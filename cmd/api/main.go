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

	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
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

	// Ledger de lotes: PostgreSQL si hay configuración de BD; si no, en memoria
	// (modo desarrollo, los datos no sobreviven al proceso).
	var (
		lotRepo         repository.LotRepository
		consumptionRepo repository.ConsumptionRepository
		txRunner        inventory.TxRunner
	)
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		lotRepo = postgres.NewLotRepository(pool)
		consumptionRepo = postgres.NewConsumptionRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	} else {
		log.Warn().Msg("sin configuración de BD: ledger en memoria (solo desarrollo)")
		store := memory.NewStore()
		lotRepo = store.LotRepository()
		consumptionRepo = store.ConsumptionRepository()
		txRunner = store
	}

	processDeliveryUC := inventory.NewProcessDeliveryUseCase(txRunner)
	consumeUC := inventory.NewConsumeUseCase(txRunner)
	costQueryUC := inventory.NewCostQueryUseCase(lotRepo, consumptionRepo)

	pdfGenerator := infrapdf.NewMarotoValuationGenerator()
	valuationPDFUC := inventory.NewValuationPDFUseCase(costQueryUC, pdfGenerator)

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
		Title:    "Costeo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProcessDelivery: processDeliveryUC,
		Consume:         consumeUC,
		CostQuery:       costQueryUC,
		ValuationPDF:    valuationPDFUC,
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
