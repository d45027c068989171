package rest

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/domain/repository"
	"github.com/jjariza/productos-cliente/pkg/logger"
	"github.com/jjariza/productos-cliente/pkg/observer"
)

// Verificar en tiempo de compilación que InventoryRepository implementa el puerto.
var _ repository.InventoryRepository = (*InventoryRepository)(nil)

// InventoryRepository adaptador REST del microservicio de inventario.
// Mantiene un espejo local de cantidades por producto, poblado bajo demanda,
// y publica su estado de carga. Tras una compra la entrada se invalida y se
// vuelve a consultar: la cantidad que ve el llamador es siempre la del
// servidor, nunca un decremento calculado localmente.
type InventoryRepository struct {
	client    *Client
	log       *logger.Logger
	threshold int
	cache     *observer.Subject[map[int]entity.Inventory]
	state     *observer.Subject[entity.LoadingState]
}

// NewInventoryRepository construye el repositorio. lowStockThreshold define
// el corte entre stock bajo y stock disponible.
func NewInventoryRepository(client *Client, lowStockThreshold int, log *logger.Logger) *InventoryRepository {
	return &InventoryRepository{
		client:    client,
		log:       log.Component("inventario"),
		threshold: lowStockThreshold,
		cache:     observer.NewSubject(map[int]entity.Inventory{}),
		state:     observer.NewSubject(entity.LoadingState{}),
	}
}

// Cache devuelve el flujo observable del cache de inventario.
func (r *InventoryRepository) Cache() *observer.Subject[map[int]entity.Inventory] { return r.cache }

// LoadingState devuelve el flujo observable del estado de carga.
func (r *InventoryRepository) LoadingState() *observer.Subject[entity.LoadingState] { return r.state }

// GetQuantity consulta la cantidad disponible de un producto y sobreescribe
// la entrada del cache.
func (r *InventoryRepository) GetQuantity(ctx context.Context, productID int) (*entity.Inventory, error) {
	r.state.Next(entity.Started())

	var doc document[entity.Inventory]
	err := r.client.Retry().Do(ctx, r.log, "consultar inventario", func() error {
		return r.client.do(ctx, http.MethodGet, "/inventory/"+strconv.Itoa(productID), nil, nil, &doc)
	})
	if err != nil {
		return nil, r.fail(err)
	}

	r.store(doc.Data)
	r.settle()
	r.log.Debug().Int("producto", productID).Int("cantidad", doc.Data.Quantity).Msg("inventario obtenido")
	return &doc.Data, nil
}

// Purchase ejecuta el decremento transaccional. En éxito invalida la entrada
// del cache y vuelve a consultar para devolver la cantidad autoritativa
// post-compra.
func (r *InventoryRepository) Purchase(ctx context.Context, productID, quantity int) (*entity.Inventory, error) {
	r.state.Next(entity.Started())

	path := "/inventory/" + strconv.Itoa(productID) + "/purchase/" + strconv.Itoa(quantity)
	var doc document[messageData]
	err := r.client.Retry().Do(ctx, r.log, "comprar producto", func() error {
		return r.client.do(ctx, http.MethodPut, path, nil, struct{}{}, &doc)
	})
	if err != nil {
		return nil, r.fail(err)
	}

	r.evict(productID)
	r.log.Info().
		Int("producto", productID).
		Int("cantidad", quantity).
		Str("mensaje", doc.Data.Message).
		Msg("compra realizada")

	// La cantidad resultante la dicta el servidor, no un cálculo local.
	return r.GetQuantity(ctx, productID)
}

// Sync dispara la reconciliación del inventario en el backend e invalida la
// entrada local para forzar una lectura fresca en el siguiente acceso.
func (r *InventoryRepository) Sync(ctx context.Context, productID int) error {
	r.state.Next(entity.Started())

	body := struct {
		ProductID int `json:"productId"`
	}{ProductID: productID}

	var doc document[messageData]
	if err := r.client.do(ctx, http.MethodPost, "/inventory/sync", nil, body, &doc); err != nil {
		return r.fail(err)
	}

	r.evict(productID)
	r.settle()
	r.log.Info().Int("producto", productID).Str("mensaje", doc.Data.Message).Msg("inventario sincronizado")
	return nil
}

// GetMany consulta varias cantidades de forma concurrente. Mejor esfuerzo:
// un fallo individual se sustituye por {productID, 0} en lugar de fallar el
// lote; para una vista de listado, datos parciales valen más que ninguno.
func (r *InventoryRepository) GetMany(ctx context.Context, productIDs []int) map[int]entity.Inventory {
	result := make(map[int]entity.Inventory, len(productIDs))
	if len(productIDs) == 0 {
		return result
	}

	r.state.Next(entity.Started())

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range productIDs {
		wg.Add(1)
		go func(productID int) {
			defer wg.Done()
			inv, err := r.GetQuantity(ctx, productID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.log.Warn().Int("producto", productID).Err(err).Msg("inventario no disponible, usando cantidad cero")
				result[productID] = entity.Inventory{ProductID: productID, Quantity: 0}
				return
			}
			result[productID] = *inv
		}(id)
	}
	wg.Wait()

	r.settle()
	return result
}

// HasEnoughStock indica si hay stock suficiente para la cantidad solicitada.
// Ante cualquier fallo responde false: fallar hacia rechazar la compra.
func (r *InventoryRepository) HasEnoughStock(ctx context.Context, productID, requested int) bool {
	inv, err := r.GetQuantity(ctx, productID)
	if err != nil {
		return false
	}
	return inv.Quantity >= requested
}

// SimulatePurchase valida una compra sin ejecutarla. Ante fallo devuelve
// {false, 0}.
func (r *InventoryRepository) SimulatePurchase(ctx context.Context, productID, quantity int) entity.PurchaseSimulation {
	inv, err := r.GetQuantity(ctx, productID)
	if err != nil {
		return entity.PurchaseSimulation{}
	}
	return entity.PurchaseSimulation{
		CanPurchase:       inv.Quantity >= quantity,
		AvailableQuantity: inv.Quantity,
	}
}

// StockStatus consulta la cantidad y la categoriza según el umbral.
func (r *InventoryRepository) StockStatus(ctx context.Context, productID int) (entity.StockStatus, error) {
	inv, err := r.GetQuantity(ctx, productID)
	if err != nil {
		return "", err
	}
	return entity.GetStockStatus(inv.Quantity, r.threshold), nil
}

// FromCache devuelve la entrada del cache sin tocar la red.
func (r *InventoryRepository) FromCache(productID int) (*entity.Inventory, bool) {
	inv, ok := r.cache.Value()[productID]
	if !ok {
		return nil, false
	}
	return &inv, true
}

// IsInCache indica si el producto tiene entrada en el cache.
func (r *InventoryRepository) IsInCache(productID int) bool {
	_, ok := r.cache.Value()[productID]
	return ok
}

// Refresh invalida la entrada del producto y la vuelve a consultar.
func (r *InventoryRepository) Refresh(ctx context.Context, productID int) (*entity.Inventory, error) {
	r.evict(productID)
	return r.GetQuantity(ctx, productID)
}

// ClearCache vacía el cache y restablece el estado de carga.
func (r *InventoryRepository) ClearCache() {
	r.cache.Next(map[int]entity.Inventory{})
	r.state.Next(entity.LoadingState{})
	r.log.Debug().Msg("cache de inventario limpiado")
}

// Statistics calcula estadísticas sobre el snapshot actual del cache.
func (r *InventoryRepository) Statistics() entity.InventoryStatistics {
	snapshot := r.cache.Value()
	stats := entity.InventoryStatistics{TotalProducts: len(snapshot)}
	for _, inv := range snapshot {
		stats.TotalStock += inv.Quantity
		switch entity.GetStockStatus(inv.Quantity, r.threshold) {
		case entity.StockInStock:
			stats.InStockProducts++
		case entity.StockLowStock:
			stats.LowStockProducts++
		case entity.StockOutOfStock:
			stats.OutOfStockProducts++
		}
	}
	return stats
}

// store reemplaza el mapa completo del cache con la entrada nueva incluida.
// La transformación corre bajo el lock del Subject: GetMany ejecuta varios
// GetQuantity en paralelo y sus escrituras no deben pisarse.
func (r *InventoryRepository) store(inv entity.Inventory) {
	r.cache.Update(func(current map[int]entity.Inventory) map[int]entity.Inventory {
		next := make(map[int]entity.Inventory, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[inv.ProductID] = inv
		return next
	})
}

// evict reemplaza el mapa completo del cache sin la entrada del producto.
func (r *InventoryRepository) evict(productID int) {
	r.cache.Update(func(current map[int]entity.Inventory) map[int]entity.Inventory {
		next := make(map[int]entity.Inventory, len(current))
		for k, v := range current {
			if k == productID {
				continue
			}
			next[k] = v
		}
		return next
	})
}

// fail normaliza el fallo, lo registra y lo publica en el estado de carga.
func (r *InventoryRepository) fail(err error) error {
	msg := Normalize(err)
	r.log.Error().Err(err).Str("mensaje", msg).Msg("operación de inventario fallida")
	r.state.Next(entity.Failed(msg, time.Now()))
	return &normalizedError{msg: msg, cause: err}
}

func (r *InventoryRepository) settle() {
	r.state.Next(entity.Settled(time.Now()))
}
