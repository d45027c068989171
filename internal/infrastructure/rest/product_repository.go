package rest

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/domain/repository"
	"github.com/jjariza/productos-cliente/pkg/logger"
	"github.com/jjariza/productos-cliente/pkg/observer"
)

// Verificar en tiempo de compilación que ProductRepository implementa el puerto.
var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository adaptador REST del microservicio de productos. Mantiene
// como cache la última página obtenida (no un espejo completo) y publica su
// estado de carga. Las lecturas se reintentan; las mutaciones no, para evitar
// el riesgo de duplicarlas.
type ProductRepository struct {
	client *Client
	log    *logger.Logger
	cache  *observer.Subject[[]entity.Product]
	state  *observer.Subject[entity.LoadingState]
}

// NewProductRepository construye el repositorio.
func NewProductRepository(client *Client, log *logger.Logger) *ProductRepository {
	return &ProductRepository{
		client: client,
		log:    log.Component("productos"),
		cache:  observer.NewSubject([]entity.Product{}),
		state:  observer.NewSubject(entity.LoadingState{}),
	}
}

// Cache devuelve el flujo observable del cache de productos.
func (r *ProductRepository) Cache() *observer.Subject[[]entity.Product] { return r.cache }

// LoadingState devuelve el flujo observable del estado de carga.
func (r *ProductRepository) LoadingState() *observer.Subject[entity.LoadingState] { return r.state }

// List obtiene una página de productos y reemplaza el cache completo con ella.
func (r *ProductRepository) List(ctx context.Context, page, size int) (*entity.ProductPage, error) {
	r.state.Next(entity.Started())

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var doc listDocument[entity.Product]
	err := r.client.Retry().Do(ctx, r.log, "listar productos", func() error {
		return r.client.do(ctx, http.MethodGet, "/products", query, nil, &doc)
	})
	if err != nil {
		return nil, r.fail(err)
	}

	items := doc.Data
	if items == nil {
		items = []entity.Product{}
	}
	r.cache.Next(items)
	r.settle()

	return &entity.ProductPage{
		Items:        items,
		TotalRecords: doc.Meta.TotalRecords,
		Page:         doc.Meta.Page,
		Size:         doc.Meta.Size,
		TotalPages:   doc.Meta.TotalPages,
	}, nil
}

// GetByID obtiene un producto puntual. No toca el cache de página.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	r.state.Next(entity.Started())

	var doc document[entity.Product]
	err := r.client.Retry().Do(ctx, r.log, "obtener producto", func() error {
		return r.client.do(ctx, http.MethodGet, "/products/"+strconv.Itoa(id), nil, nil, &doc)
	})
	if err != nil {
		return nil, r.fail(err)
	}

	r.settle()
	return &doc.Data, nil
}

// Create registra un producto nuevo. En éxito agrega al cache el producto
// devuelto por el servidor (ya con ID asignado). No se reintenta.
func (r *ProductRepository) Create(ctx context.Context, p entity.Product) (*entity.Product, error) {
	r.state.Next(entity.Started())

	var doc document[entity.Product]
	if err := r.client.do(ctx, http.MethodPost, "/products", nil, p, &doc); err != nil {
		return nil, r.fail(err)
	}

	r.cache.Update(func(current []entity.Product) []entity.Product {
		next := make([]entity.Product, 0, len(current)+1)
		next = append(next, current...)
		return append(next, doc.Data)
	})
	r.settle()

	r.log.Info().Interface("producto", doc.Data).Msg("producto creado exitosamente")
	return &doc.Data, nil
}

// Update actualiza parcialmente un producto. En éxito reemplaza la entrada
// del cache cuyo ID coincide. No se reintenta.
func (r *ProductRepository) Update(ctx context.Context, id int, patch entity.ProductPatch) (*entity.Product, error) {
	r.state.Next(entity.Started())

	var doc document[entity.Product]
	if err := r.client.do(ctx, http.MethodPut, "/products/"+strconv.Itoa(id), nil, patch, &doc); err != nil {
		return nil, r.fail(err)
	}

	r.cache.Update(func(current []entity.Product) []entity.Product {
		next := make([]entity.Product, len(current))
		for i, p := range current {
			if p.ID != nil && *p.ID == id {
				next[i] = doc.Data
			} else {
				next[i] = p
			}
		}
		return next
	})
	r.settle()

	r.log.Info().Int("id", id).Msg("producto actualizado exitosamente")
	return &doc.Data, nil
}

// Delete elimina un producto. En éxito remueve la entrada del cache. No se
// reintenta.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	r.state.Next(entity.Started())

	if err := r.client.do(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil, nil); err != nil {
		return r.fail(err)
	}

	r.cache.Update(func(current []entity.Product) []entity.Product {
		next := make([]entity.Product, 0, len(current))
		for _, p := range current {
			if p.ID != nil && *p.ID == id {
				continue
			}
			next = append(next, p)
		}
		return next
	})
	r.settle()

	r.log.Info().Int("id", id).Msg("producto eliminado exitosamente")
	return nil
}

// SearchLocal filtra el snapshot actual del cache: nombre por subcadena sin
// distinguir mayúsculas, y rango de precio. Nunca toca la red.
func (r *ProductRepository) SearchLocal(filters entity.ProductFilters) []entity.Product {
	snapshot := r.cache.Value()
	result := make([]entity.Product, 0, len(snapshot))
	name := strings.ToLower(filters.Name)

	for _, p := range snapshot {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if filters.PriceMin != nil && p.Price.LessThan(*filters.PriceMin) {
			continue
		}
		if filters.PriceMax != nil && p.Price.GreaterThan(*filters.PriceMax) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// SortLocal ordena una copia del snapshot actual del cache por un solo campo.
// Los nombres se comparan con el colador del español. Nunca toca la red.
func (r *ProductRepository) SortLocal(opts entity.ProductSortOptions) []entity.Product {
	snapshot := r.cache.Value()
	result := make([]entity.Product, len(snapshot))
	copy(result, snapshot)

	// El colador no es seguro para uso concurrente: uno por llamada.
	col := collate.New(language.Spanish)

	sort.SliceStable(result, func(i, j int) bool {
		var cmp int
		switch opts.Field {
		case entity.SortByName:
			cmp = col.CompareString(result[i].Name, result[j].Name)
		case entity.SortByPrice:
			cmp = result[i].Price.Cmp(result[j].Price)
		default:
			cmp = idOrZero(result[i]) - idOrZero(result[j])
		}
		if opts.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return result
}

// Refresh vuelve a pedir la página indicada (recarga el cache).
func (r *ProductRepository) Refresh(ctx context.Context, page, size int) (*entity.ProductPage, error) {
	r.log.Debug().Msg("refrescando cache de productos")
	return r.List(ctx, page, size)
}

// ClearCache vacía el cache y restablece el estado de carga.
func (r *ProductRepository) ClearCache() {
	r.cache.Next([]entity.Product{})
	r.state.Next(entity.LoadingState{})
	r.log.Debug().Msg("cache de productos limpiado")
}

// HasProductsInCache indica si hay productos en el cache.
func (r *ProductRepository) HasProductsInCache() bool {
	return len(r.cache.Value()) > 0
}

// Statistics calcula estadísticas sobre el snapshot actual del cache.
func (r *ProductRepository) Statistics() entity.ProductStatistics {
	snapshot := r.cache.Value()
	stats := entity.ProductStatistics{TotalProducts: len(snapshot)}
	if len(snapshot) == 0 {
		return stats
	}

	sum := decimal.Zero
	stats.MinPrice = snapshot[0].Price
	stats.MaxPrice = snapshot[0].Price
	for _, p := range snapshot {
		sum = sum.Add(p.Price)
		if p.Price.LessThan(stats.MinPrice) {
			stats.MinPrice = p.Price
		}
		if p.Price.GreaterThan(stats.MaxPrice) {
			stats.MaxPrice = p.Price
		}
	}
	stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(snapshot))))
	return stats
}

// fail normaliza el fallo, lo registra y lo publica en el estado de carga.
func (r *ProductRepository) fail(err error) error {
	msg := Normalize(err)
	r.log.Error().Err(err).Str("mensaje", msg).Msg("operación de productos fallida")
	r.state.Next(entity.Failed(msg, time.Now()))
	return &normalizedError{msg: msg, cause: err}
}

func (r *ProductRepository) settle() {
	r.state.Next(entity.Settled(time.Now()))
}

func idOrZero(p entity.Product) int {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}
