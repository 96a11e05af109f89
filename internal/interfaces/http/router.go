package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tagihan-api/internal/application/auth"
	"github.com/jhoicas/tagihan-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *billing.CustomerUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers: /form va antes que /:id para no capturarse como id.
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/form", customerHandler.NewForm)
	customers.Get("/:id/form", customerHandler.EditForm)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
}
