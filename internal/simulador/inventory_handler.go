package simulador

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jjariza/productos-cliente/internal/application/dto"
	"github.com/jjariza/productos-cliente/internal/domain"
)

// inventoryHandler maneja las rutas del microservicio de inventario simulado.
type inventoryHandler struct {
	store *Store
}

// GetQuantity devuelve la cantidad disponible de un producto.
func (h *inventoryHandler) GetQuantity(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
			"Entrada inválida", "El id del producto debe ser numérico")
	}
	quantity, err := h.store.Quantity(productID)
	if err != nil {
		return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Inventario no encontrado", "No existe inventario para el producto solicitado")
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{
		"productId": productID,
		"quantity":  quantity,
	}, nil)
}

// Purchase decrementa el stock de forma transaccional.
func (h *inventoryHandler) Purchase(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_ID",
			"Entrada inválida", "El id del producto debe ser numérico")
	}
	quantity, err := c.ParamsInt("quantity")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_QUANTITY",
			"Entrada inválida", "La cantidad debe ser numérica")
	}

	if err := h.store.Purchase(productID, quantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
				"Inventario no encontrado", "No existe inventario para el producto solicitado")
		case errors.Is(err, domain.ErrInsufficientStock):
			available, _ := h.store.Quantity(productID)
			return errorResponse(c, fiber.StatusConflict, "INSUFFICIENT_STOCK",
				"Stock insuficiente",
				fmt.Sprintf("Solo hay %d unidades disponibles", available))
		default:
			return errorResponse(c, fiber.StatusBadRequest, "INVALID_QUANTITY",
				"Entrada inválida", "La cantidad debe ser mayor que cero")
		}
	}

	return dataResponse(c, fiber.StatusOK, fiber.Map{
		"message": fmt.Sprintf("Compra registrada: %d unidades del producto %d", quantity, productID),
	}, nil)
}

// Sync reconcilia el inventario de un producto con la fuente externa.
func (h *inventoryHandler) Sync(c *fiber.Ctx) error {
	var in dto.SyncInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "INVALID_BODY",
			"Entrada inválida", "El cuerpo de la petición no es JSON válido")
	}
	if err := h.store.Sync(in.ProductID); err != nil {
		return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Inventario no encontrado", "No existe inventario para el producto solicitado")
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{
		"message": fmt.Sprintf("Inventario sincronizado para el producto %d", in.ProductID),
	}, nil)
}
