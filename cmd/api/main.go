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
	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/mini-crm/internal/application/auth"
	"github.com/tu-usuario/mini-crm/internal/application/cache"
	"github.com/tu-usuario/mini-crm/internal/application/consistency"
	"github.com/tu-usuario/mini-crm/internal/application/usecase"
	"github.com/tu-usuario/mini-crm/internal/infrastructure/memcache"
	infrapdf "github.com/tu-usuario/mini-crm/internal/infrastructure/pdf"
	"github.com/tu-usuario/mini-crm/internal/infrastructure/postgres"
	"github.com/tu-usuario/mini-crm/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/mini-crm/internal/interfaces/http"
	"github.com/tu-usuario/mini-crm/pkg/config"
	"github.com/tu-usuario/mini-crm/pkg/logger"
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

	customerRepo := postgres.NewCustomerRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché: Redis si hay REDIS_ADDR, si no el caché en memoria del proceso.
	var store cache.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = rediscache.New(rdb, 0)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis habilitado")
	} else {
		store = memcache.New()
		log.Info().Msg("caché en memoria habilitado")
	}
	coordinator := cache.NewCoordinator(store)

	engine := consistency.NewEngine(customerRepo, offerRepo, taskRepo)

	customerUC := usecase.NewCustomerUseCase(customerRepo, engine, coordinator, txRunner)
	offerUC := usecase.NewOfferUseCase(offerRepo, customerRepo, engine, coordinator, txRunner)
	taskUC := usecase.NewTaskUseCase(taskRepo, customerRepo, offerRepo, engine, coordinator)
	userUC := usecase.NewUserUseCase(userRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	offerPDFUC := usecase.NewOfferPDFUseCase(offerUC, customerUC, pdfGenerator)

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
		Title:    "Mini CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		OfferUC:    offerUC,
		TaskUC:     taskUC,
		OfferPDF:   offerPDFUC,
		UserUC:     userUC,
		AuthUC:     authUC,
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
