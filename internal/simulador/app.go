package simulador

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config opciones del simulador.
type Config struct {
	AppName    string
	APIKey     string
	HeaderName string
}

// jsonAPIVersion se incluye en todas las respuestas.
var jsonAPIVersion = fiber.Map{"version": "1.0"}

// New construye la aplicación Fiber que emula ambos microservicios
// (productos e inventario) sobre el store dado, hablando el mismo contrato
// JSON:API que los backends reales.
func New(cfg Config, store *Store) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	})
	app.Use(recover.New())
	app.Use(apiKeyMiddleware(cfg))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	products := &productHandler{store: store}
	app.Get("/products", products.List)
	app.Post("/products", products.Create)
	app.Get("/products/:id", products.GetByID)
	app.Put("/products/:id", products.Update)
	app.Delete("/products/:id", products.Delete)

	inventory := &inventoryHandler{store: store}
	app.Get("/inventory/:productId", inventory.GetQuantity)
	app.Put("/inventory/:productId/purchase/:quantity", inventory.Purchase)
	app.Post("/inventory/sync", inventory.Sync)

	return app
}

// apiKeyMiddleware exige la API key estática en todas las rutas salvo /health.
func apiKeyMiddleware(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}
		if c.Get(cfg.HeaderName) != cfg.APIKey {
			return errorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED",
				"No autorizado", "La clave de API no es válida")
		}
		return c.Next()
	}
}

// dataResponse respuesta exitosa con data y metadatos opcionales.
func dataResponse(c *fiber.Ctx, status int, data any, meta any) error {
	body := fiber.Map{"data": data, "jsonapi": jsonAPIVersion}
	if meta != nil {
		body["meta"] = meta
	}
	return c.Status(status).JSON(body)
}

// errorResponse respuesta de error en formato JSON:API.
func errorResponse(c *fiber.Ctx, status int, code, title, detail string) error {
	return c.Status(status).JSON(fiber.Map{
		"errors": []fiber.Map{{
			"code":      code,
			"title":     title,
			"detail":    detail,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}},
		"jsonapi": jsonAPIVersion,
	})
}
