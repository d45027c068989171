package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo tal como lo expone el
// microservicio de productos. ID lo asigna el servidor al crear; antes de la
// creación es nil. El campo JSON "imagen" viene así del backend.
type Product struct {
	ID          *int            `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Imagen      string          `json:"imagen"`
	Price       decimal.Decimal `json:"price"`
}

// HasID indica si el producto ya tiene identidad asignada por el servidor.
func (p Product) HasID() bool { return p.ID != nil }

// ProductPatch actualización parcial de un producto. Los campos nil no se
// envían ni se modifican.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Imagen      *string          `json:"imagen,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ProductPage página de productos devuelta por el listado paginado.
type ProductPage struct {
	Items        []Product
	TotalRecords int
	Page         int
	Size         int
	TotalPages   int
}

// ProductFilters filtros de búsqueda local sobre el cache de productos.
type ProductFilters struct {
	Name     string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
}

// Campos por los que se puede ordenar el cache local.
const (
	SortByID    = "id"
	SortByName  = "name"
	SortByPrice = "price"
)

// ProductSortOptions ordenamiento local sobre el cache de productos.
type ProductSortOptions struct {
	Field      string // id, name o price
	Descending bool
}

// ProductWithInventory producto combinado con su inventario para la vista de
// listado. Inventory es nil cuando la consulta de stock falló.
type ProductWithInventory struct {
	Product
	Inventory   *Inventory
	StockStatus StockStatus
}

// ProductStatistics estadísticas calculadas sobre el cache de productos.
type ProductStatistics struct {
	TotalProducts int
	AveragePrice  decimal.Decimal
	MaxPrice      decimal.Decimal
	MinPrice      decimal.Decimal
}
