package rest_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjariza/productos-cliente/internal/domain"
	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/infrastructure/rest"
	"github.com/jjariza/productos-cliente/pkg/config"
	"github.com/jjariza/productos-cliente/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAPIKey    = "clave123"
	testKeyHeader = "X-API-KEY"
)

// newTestClient apunta el cliente REST al servidor de prueba con reintentos
// rápidos (3 intentos, 1 ms de retardo base).
func newTestClient(baseURL string) *rest.Client {
	return rest.NewClient(baseURL,
		config.AuthConfig{APIKey: testAPIKey, HeaderName: testKeyHeader},
		config.HTTPConfig{
			Timeout:       5 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    time.Millisecond,
		},
		logger.Nop())
}

func newProductRepo(baseURL string) *rest.ProductRepository {
	return rest.NewProductRepository(newTestClient(baseURL), logger.Nop())
}

// listBody cuerpo JSON:API de una página de dos productos.
const listBody = `{
	"data": [
		{"id": 1, "name": "Teclado", "description": "mecánico", "price": 59.99},
		{"id": 2, "name": "Ñandú de peluche", "description": "suave", "price": 19.90}
	],
	"meta": {"totalRecords": 5, "page": 0, "size": 2, "totalPages": 3},
	"jsonapi": {"version": "1.0"}
}`

// ──────────────────────────────────────────────────────────────────────────────
// List: página + cache + estado de carga
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepository_List_PueblaPaginaYCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get(testKeyHeader), "toda petición lleva la API key")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"), "toda petición lleva un request ID")
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "2", r.URL.Query().Get("size"))
		fmt.Fprint(w, listBody)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	page, err := repo.List(context.Background(), 0, 2)
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Teclado", page.Items[0].Name)
	assert.True(t, page.Items[0].Price.Equal(decimal.RequireFromString("59.99")))
	assert.Equal(t, 5, page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)

	// La página reemplaza el cache completo.
	assert.Len(t, repo.Cache().Value(), 2)
	assert.True(t, repo.HasProductsInCache())

	state := repo.LoadingState().Value()
	assert.False(t, state.Loading)
	assert.Nil(t, state.Error)
	require.NotNil(t, state.LastUpdate)
}

func TestProductRepository_List_ReintentaLecturas(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, listBody)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	_, err := repo.List(context.Background(), 0, 2)

	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls), "dos fallos y un éxito: tres peticiones")
}

func TestProductRepository_List_TodosLosIntentosFallan(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	_, err := repo.List(context.Background(), 0, 2)

	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls), "se agotan exactamente MaxAttempts intentos")
	assert.Equal(t, "Error del servidor (500): Internal Server Error", err.Error())

	state := repo.LoadingState().Value()
	require.NotNil(t, state.Error)
	assert.Equal(t, err.Error(), *state.Error, "el estado de carga publica el mismo mensaje normalizado")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID: sin efecto sobre el cache de página
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepository_GetByID_NoTocaElCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"id": 7, "name": "Monitor", "description": "27 pulgadas", "price": 249.00}}`)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	p, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Monitor", p.Name)
	assert.Empty(t, repo.Cache().Value(), "la consulta puntual no alimenta el cache de página")
}

func TestProductRepository_GetByID_404MapeaNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors": [{"code": "NOT_FOUND", "title": "Producto no encontrado", "detail": "No existe un producto con el id solicitado"}]}`)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	_, err := repo.GetByID(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Producto no encontrado: No existe un producto con el id solicitado", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones: sin reintentos, cache actualizado solo en éxito
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepository_Create_NoSeReintenta(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	_, err := repo.Create(context.Background(), entity.Product{Name: "Nuevo", Price: decimal.NewFromInt(10)})

	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "una mutación fallida no debe repetirse")
	assert.Empty(t, repo.Cache().Value(), "en fallo el cache queda intacto")
}

func TestProductRepository_Create_AgregaAlCacheElProductoDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, `{"data": {"id": 42, "name": "Nuevo", "description": "", "price": 10}}`)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	created, err := repo.Create(context.Background(), entity.Product{Name: "Nuevo", Price: decimal.NewFromInt(10)})

	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, 42, *created.ID, "el ID lo asigna el servidor")

	cached := repo.Cache().Value()
	require.Len(t, cached, 1)
	assert.Equal(t, 42, *cached[0].ID)
}

// Los altas al cache de creaciones concurrentes no deben pisarse entre sí.
func TestProductRepository_Create_ConcurrenteNoPierdeEntradas(t *testing.T) {
	const lote = 16

	var nextID int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := atomic.AddInt32(&nextID, 1)
		fmt.Fprintf(w, `{"data": {"id": %d, "name": "Producto %d", "description": "", "price": 10}}`, id, id)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < lote; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), entity.Product{Name: "Producto", Price: decimal.NewFromInt(10)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, repo.Cache().Value(), lote,
		"cada creación exitosa debe agregar su entrada al cache")
}

func TestProductRepository_Update_ReemplazaEntradaDelCache(t *testing.T) {
	var listed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !listed {
			listed = true
			fmt.Fprint(w, listBody)
			return
		}
		assert.Equal(t, http.MethodPut, r.Method)
		fmt.Fprint(w, `{"data": {"id": 1, "name": "Teclado Pro", "description": "mecánico", "price": 79.99}}`)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	_, err := repo.List(context.Background(), 0, 2)
	require.NoError(t, err)

	nombre := "Teclado Pro"
	updated, err := repo.Update(context.Background(), 1, entity.ProductPatch{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Teclado Pro", updated.Name)

	cached := repo.Cache().Value()
	require.Len(t, cached, 2, "actualizar no cambia el tamaño del cache")
	assert.Equal(t, "Teclado Pro", cached[0].Name)
	assert.Equal(t, "Ñandú de peluche", cached[1].Name, "las demás entradas no se tocan")
}

func TestProductRepository_Delete_RemueveDelCache(t *testing.T) {
	var listed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !listed {
			listed = true
			fmt.Fprint(w, listBody)
			return
		}
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := newProductRepo(srv.URL)
	_, err := repo.List(context.Background(), 0, 2)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), 1))

	cached := repo.Cache().Value()
	require.Len(t, cached, 1)
	assert.Equal(t, 2, *cached[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones locales sobre el cache
// ──────────────────────────────────────────────────────────────────────────────

func seedCache(t *testing.T) *rest.ProductRepository {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data": [
				{"id": 1, "name": "Zapato", "description": "", "price": 30},
				{"id": 2, "name": "ábaco", "description": "", "price": 15},
				{"id": 3, "name": "Ñoqui congelado", "description": "", "price": 8}
			],
			"meta": {"totalRecords": 3, "page": 0, "size": 10, "totalPages": 1}
		}`)
	}))
	t.Cleanup(srv.Close)

	repo := newProductRepo(srv.URL)
	_, err := repo.List(context.Background(), 0, 10)
	require.NoError(t, err)
	return repo
}

func TestProductRepository_SearchLocal_PorNombreYRango(t *testing.T) {
	repo := seedCache(t)

	porNombre := repo.SearchLocal(entity.ProductFilters{Name: "ñoqui"})
	require.Len(t, porNombre, 1, "la búsqueda no distingue mayúsculas")
	assert.Equal(t, "Ñoqui congelado", porNombre[0].Name)

	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(20)
	porPrecio := repo.SearchLocal(entity.ProductFilters{PriceMin: &min, PriceMax: &max})
	require.Len(t, porPrecio, 1)
	assert.Equal(t, "ábaco", porPrecio[0].Name)
}

func TestProductRepository_SortLocal_NombreConColadorEspanol(t *testing.T) {
	repo := seedCache(t)

	orden := repo.SortLocal(entity.ProductSortOptions{Field: entity.SortByName})
	require.Len(t, orden, 3)
	// Con el colador del español "ábaco" < "Ñoqui" < "Zapato"; un simple
	// ordenamiento por bytes pondría las letras acentuadas al final.
	assert.Equal(t, "ábaco", orden[0].Name)
	assert.Equal(t, "Ñoqui congelado", orden[1].Name)
	assert.Equal(t, "Zapato", orden[2].Name)

	// El cache no se reordena: SortLocal trabaja sobre una copia.
	assert.Equal(t, "Zapato", repo.Cache().Value()[0].Name)
}

func TestProductRepository_SortLocal_PrecioDescendente(t *testing.T) {
	repo := seedCache(t)

	orden := repo.SortLocal(entity.ProductSortOptions{Field: entity.SortByPrice, Descending: true})
	require.Len(t, orden, 3)
	assert.Equal(t, "Zapato", orden[0].Name)
	assert.Equal(t, "Ñoqui congelado", orden[2].Name)
}

func TestProductRepository_Statistics(t *testing.T) {
	repo := seedCache(t)

	stats := repo.Statistics()
	assert.Equal(t, 3, stats.TotalProducts)
	assert.True(t, stats.MinPrice.Equal(decimal.NewFromInt(8)))
	assert.True(t, stats.MaxPrice.Equal(decimal.NewFromInt(30)))
	// (30 + 15 + 8) / 3
	assert.True(t, stats.AveragePrice.Round(4).Equal(decimal.RequireFromString("17.6667")))
}

func TestProductRepository_ClearCache(t *testing.T) {
	repo := seedCache(t)

	repo.ClearCache()

	assert.Empty(t, repo.Cache().Value())
	assert.False(t, repo.HasProductsInCache())
	state := repo.LoadingState().Value()
	assert.False(t, state.Loading)
	assert.Nil(t, state.LastUpdate, "limpiar el cache restablece el estado de carga")
}
