package repository

import (
	"context"

	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/pkg/observer"
)

// InventoryRepository define el puerto de acceso al microservicio de
// inventario (DIP). Mantiene un espejo local de cantidades por producto,
// consultado bajo demanda (nunca pre-poblado), y expone su estado de carga
// como flujo observable.
type InventoryRepository interface {
	// GetQuantity consulta la cantidad disponible y sobreescribe la entrada
	// del cache para ese producto.
	GetQuantity(ctx context.Context, productID int) (*entity.Inventory, error)
	// Purchase ejecuta el decremento transaccional. En éxito invalida la
	// entrada del cache y vuelve a consultar, de modo que el llamador recibe
	// siempre la cantidad autoritativa post-compra, nunca un cálculo local.
	Purchase(ctx context.Context, productID, quantity int) (*entity.Inventory, error)
	// Sync dispara la reconciliación en el backend e invalida la entrada
	// local (la siguiente lectura será fresca).
	Sync(ctx context.Context, productID int) error
	// GetMany consulta varias cantidades de forma concurrente. Mejor esfuerzo:
	// el fallo de un ID individual se sustituye por {productID, 0} en lugar
	// de fallar el lote completo.
	GetMany(ctx context.Context, productIDs []int) map[int]entity.Inventory

	// Ayudas de solo lectura sobre GetQuantity; ante fallo responden de forma
	// segura hacia rechazar la compra.
	HasEnoughStock(ctx context.Context, productID, requested int) bool
	SimulatePurchase(ctx context.Context, productID, quantity int) entity.PurchaseSimulation
	StockStatus(ctx context.Context, productID int) (entity.StockStatus, error)

	FromCache(productID int) (*entity.Inventory, bool)
	IsInCache(productID int) bool
	// Refresh invalida la entrada y la vuelve a consultar.
	Refresh(ctx context.Context, productID int) (*entity.Inventory, error)
	ClearCache()
	Statistics() entity.InventoryStatistics

	Cache() *observer.Subject[map[int]entity.Inventory]
	LoadingState() *observer.Subject[entity.LoadingState]
}
