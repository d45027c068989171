package dto_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jjariza/productos-cliente/internal/application/dto"
	"github.com/jjariza/productos-cliente/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación local: las entradas inválidas se rechazan antes de tocar la red
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProductRequest_Validate(t *testing.T) {
	valido := dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(10)}
	assert.NoError(t, valido.Validate())

	sinNombre := dto.CreateProductRequest{Price: decimal.NewFromInt(10)}
	assert.ErrorIs(t, sinNombre.Validate(), domain.ErrInvalidInput)

	nombreLargo := dto.CreateProductRequest{Name: strings.Repeat("x", 201), Price: decimal.NewFromInt(10)}
	assert.ErrorIs(t, nombreLargo.Validate(), domain.ErrInvalidInput)

	precioNegativo := dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, precioNegativo.Validate(), domain.ErrInvalidInput)

	gratis := dto.CreateProductRequest{Name: "Muestra", Price: decimal.Zero}
	assert.NoError(t, gratis.Validate(), "precio cero es válido")
}

func TestUpdateProductRequest_Validate_SoloCamposPresentes(t *testing.T) {
	vacio := dto.UpdateProductRequest{}
	assert.NoError(t, vacio.Validate(), "sin campos no hay nada que validar")

	nombre := ""
	conNombreVacio := dto.UpdateProductRequest{Name: &nombre}
	assert.ErrorIs(t, conNombreVacio.Validate(), domain.ErrInvalidInput)

	negativo := decimal.NewFromInt(-5)
	conPrecioNegativo := dto.UpdateProductRequest{Price: &negativo}
	assert.ErrorIs(t, conPrecioNegativo.Validate(), domain.ErrInvalidInput)
}

func TestPurchaseRequest_Validate(t *testing.T) {
	assert.NoError(t, dto.PurchaseRequest{ProductID: 1, Quantity: 1}.Validate())
	assert.ErrorIs(t, dto.PurchaseRequest{ProductID: 1, Quantity: 0}.Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, dto.PurchaseRequest{ProductID: 1, Quantity: -2}.Validate(), domain.ErrInvalidInput)
}

func TestPaginationOptions_WithDefaults(t *testing.T) {
	opts := dto.PaginationOptions{}.WithDefaults(10)
	assert.Equal(t, 0, opts.Page)
	assert.Equal(t, 10, opts.Size)

	opts = dto.PaginationOptions{Page: -3, Size: 0}.WithDefaults(20)
	assert.Equal(t, 0, opts.Page, "página negativa se normaliza a cero")
	assert.Equal(t, 20, opts.Size)

	opts = dto.PaginationOptions{Page: 2, Size: 5}.WithDefaults(10)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 5, opts.Size)
}
