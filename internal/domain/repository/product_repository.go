package repository

import (
	"context"

	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/pkg/observer"
)

// ProductRepository define el puerto de acceso al microservicio de productos
// (DIP). El repositorio mantiene un espejo local de la última página obtenida
// y expone su estado de carga como flujo observable.
//
// Las lecturas remotas aplican la política de reintentos; create/update/delete
// no se reintentan para evitar mutaciones duplicadas.
type ProductRepository interface {
	// List obtiene una página y reemplaza el cache completo con ella.
	List(ctx context.Context, page, size int) (*entity.ProductPage, error)
	// GetByID obtiene un producto puntual sin tocar el cache de página.
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	// Create registra un producto; en éxito lo agrega al cache con el ID
	// asignado por el servidor.
	Create(ctx context.Context, p entity.Product) (*entity.Product, error)
	// Update actualiza parcialmente; en éxito reemplaza la entrada del cache.
	Update(ctx context.Context, id int, patch entity.ProductPatch) (*entity.Product, error)
	// Delete elimina; en éxito remueve la entrada del cache.
	Delete(ctx context.Context, id int) error

	// SearchLocal y SortLocal son transformaciones puras sobre el snapshot
	// actual del cache; nunca tocan la red.
	SearchLocal(filters entity.ProductFilters) []entity.Product
	SortLocal(opts entity.ProductSortOptions) []entity.Product

	// Refresh vuelve a pedir la página indicada (fuerza recarga del cache).
	Refresh(ctx context.Context, page, size int) (*entity.ProductPage, error)
	ClearCache()
	HasProductsInCache() bool
	Statistics() entity.ProductStatistics

	Cache() *observer.Subject[[]entity.Product]
	LoadingState() *observer.Subject[entity.LoadingState]
}
