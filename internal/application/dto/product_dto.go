package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jjariza/productos-cliente/internal/domain"
	"github.com/jjariza/productos-cliente/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. La validación es
// puramente local: una entrada inválida se rechaza antes de tocar la red.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Imagen      string          `json:"imagen"`
	Price       decimal.Decimal `json:"price"`
}

// Validate aplica las restricciones del formulario. Devuelve un error que
// envuelve domain.ErrInvalidInput con el detalle del campo.
func (r CreateProductRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if len(r.Name) > 200 {
		return fmt.Errorf("%w: el nombre no puede exceder 200 caracteres", domain.ErrInvalidInput)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ToEntity convierte la solicitud al producto a enviar (sin ID: lo asigna el
// servidor).
func (r CreateProductRequest) ToEntity() entity.Product {
	return entity.Product{
		Name:        r.Name,
		Description: r.Description,
		Imagen:      r.Imagen,
		Price:       r.Price,
	}
}

// UpdateProductRequest entrada para actualizar un producto. Todos los campos
// son opcionales; los nil no se envían.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Imagen      *string          `json:"imagen,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Validate aplica las restricciones del formulario sobre los campos presentes.
func (r UpdateProductRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
	}
	if r.Price != nil && r.Price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ToPatch convierte la solicitud en la actualización parcial del dominio.
func (r UpdateProductRequest) ToPatch() entity.ProductPatch {
	return entity.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Imagen:      r.Imagen,
		Price:       r.Price,
	}
}
