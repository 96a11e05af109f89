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
	"github.com/jhoicas/tagihan-api/internal/application/auth"
	"github.com/jhoicas/tagihan-api/internal/application/billing"
	"github.com/jhoicas/tagihan-api/internal/domain/repository"
	"github.com/jhoicas/tagihan-api/internal/infrastructure/memory"
	"github.com/jhoicas/tagihan-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tagihan-api/internal/interfaces/http"
	"github.com/jhoicas/tagihan-api/pkg/config"
	"github.com/jhoicas/tagihan-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		customerRepo repository.CustomerRepository
		txRunner     billing.CustomerTxRunner
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		// Sin persistencia: útil para desarrollo y demos.
		memRepo := memory.NewCustomerRepository()
		customerRepo = memRepo
		txRunner = memory.NewTxRunner(memRepo)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		customerRepo = postgres.NewCustomerRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	customerUC := billing.NewCustomerUseCase(customerRepo, txRunner, log.Component("customers"))
	authUC := auth.NewAuthUseCase(
		auth.Operator{
			Email:        cfg.Auth.OperatorEmail,
			PasswordHash: cfg.Auth.OperatorPasswordHash,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	if cfg.Auth.OperatorEmail == "" {
		log.Warn().Msg("AUTH_OPERATOR_EMAIL vacío: el login quedará deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Tagihan API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log.Component("http"),
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
