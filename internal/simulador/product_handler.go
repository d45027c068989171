package simulador

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jjariza/productos-cliente/internal/application/dto"
	"github.com/jjariza/productos-cliente/internal/domain"
)

// productHandler maneja las rutas del microservicio de productos simulado.
type productHandler struct {
	store *Store
}

// List devuelve una página de productos con metadatos de paginación.
func (h *productHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 10)
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	items, total := h.store.ListProducts(page, size)
	totalPages := (total + size - 1) / size

	return dataResponse(c, fiber.StatusOK, items, fiber.Map{
		"totalRecords": total,
		"page":         page,
		"size":         size,
		"totalPages":   totalPages,
	})
}

// GetByID devuelve un producto puntual.
func (h *productHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
			"Entrada inválida", "El id del producto debe ser numérico")
	}
	p, err := h.store.GetProduct(id)
	if err != nil {
		return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Producto no encontrado", "No existe un producto con el id solicitado")
	}
	return dataResponse(c, fiber.StatusOK, p, nil)
}

// Create registra un producto nuevo y le asigna ID.
func (h *productHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_BODY",
			"Entrada inválida", "El cuerpo de la petición no es JSON válido")
	}
	if err := in.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION",
			"Entrada inválida", err.Error())
	}
	created := h.store.CreateProduct(in.ToEntity())
	return dataResponse(c, fiber.StatusCreated, created, nil)
}

// Update aplica una actualización parcial.
func (h *productHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
			"Entrada inválida", "El id del producto debe ser numérico")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_BODY",
			"Entrada inválida", "El cuerpo de la petición no es JSON válido")
	}
	if err := in.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "VALIDATION",
			"Entrada inválida", err.Error())
	}
	updated, err := h.store.UpdateProduct(id, in.ToPatch())
	if err != nil {
		return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Producto no encontrado", "No existe un producto con el id solicitado")
	}
	return dataResponse(c, fiber.StatusOK, updated, nil)
}

// Delete elimina un producto.
func (h *productHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
			"Entrada inválida", "El id del producto debe ser numérico")
	}
	if err := h.store.DeleteProduct(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
				"Producto no encontrado", "No existe un producto con el id solicitado")
		}
		return errorResponse(c, fiber.StatusInternalServerError, "INTERNAL",
			"Error interno", err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
