package dto

import (
	"fmt"

	"github.com/jjariza/productos-cliente/internal/domain"
)

// PurchaseRequest solicitud de compra validada del lado del cliente.
type PurchaseRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Validate rechaza cantidades no positivas antes de tocar la red.
func (r PurchaseRequest) Validate() error {
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

// SyncInventoryRequest cuerpo para disparar la reconciliación de inventario.
type SyncInventoryRequest struct {
	ProductID int `json:"productId"`
}
