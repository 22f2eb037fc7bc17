package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salecart-api/internal/application/auth"
	"github.com/jhoicas/salecart-api/internal/application/cart"
	"github.com/jhoicas/salecart-api/internal/application/sale"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CartUC       *cart.UseCase
	Consolidator *sale.Consolidator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	cartHandler := NewCartHandler(deps.CartUC)
	saleHandler := NewSaleHandler(deps.Consolidator)

	carts := protected.Group("/carts")
	carts.Post("/onchange", cartHandler.OnChange)
	carts.Post("/amounts", cartHandler.Amounts)
	carts.Post("/consolidate", saleHandler.Consolidate)
	carts.Post("/", cartHandler.Create)
	carts.Get("/", cartHandler.List)
	carts.Delete("/", cartHandler.DeleteMany)
	carts.Get("/:id", cartHandler.GetByID)
	carts.Put("/:id", cartHandler.Update)
	carts.Delete("/:id", cartHandler.Delete)

	sales := protected.Group("/sales")
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/pdf", saleHandler.PDF)
}
