package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jjariza/productos-cliente/internal/application/notification"
	"github.com/jjariza/productos-cliente/internal/domain"
	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/domain/repository"
	"github.com/jjariza/productos-cliente/pkg/logger"
)

// DetailUseCase orquesta la vista de detalle de un producto: carga conjunta
// de producto e inventario, validación de la cantidad a comprar y ejecución
// de la compra reconciliando el cache con la cantidad autoritativa del
// servidor.
type DetailUseCase struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	notifier  *notification.Service
	log       *logger.Logger

	mu        sync.Mutex
	requested int
	inFlight  bool
}

// ProductDetail resultado de cargar la vista de detalle. Inventory es nil y
// InventoryError no vacío cuando la consulta de stock falló: el producto
// sigue siendo mostrable aunque el inventario no lo sea.
type ProductDetail struct {
	Product        *entity.Product
	Inventory      *entity.Inventory
	InventoryError string
}

// NewDetailUseCase construye el caso de uso. La cantidad solicitada inicia
// en 1.
func NewDetailUseCase(
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	notifier *notification.Service,
	log *logger.Logger,
) *DetailUseCase {
	return &DetailUseCase{
		products:  products,
		inventory: inventory,
		notifier:  notifier,
		log:       log.Component("detalle"),
		requested: 1,
	}
}

// Load pide producto e inventario en paralelo. Un fallo del inventario no es
// fatal: se devuelve el producto con InventoryError poblado. Un fallo del
// producto sí falla la carga completa.
func (uc *DetailUseCase) Load(ctx context.Context, productID int) (*ProductDetail, error) {
	var (
		wg      sync.WaitGroup
		product *entity.Product
		prodErr error
		inv     *entity.Inventory
		invErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		product, prodErr = uc.products.GetByID(ctx, productID)
	}()
	go func() {
		defer wg.Done()
		inv, invErr = uc.inventory.GetQuantity(ctx, productID)
	}()
	wg.Wait()

	if prodErr != nil {
		uc.notifier.Error("Error", prodErr.Error())
		return nil, prodErr
	}

	detail := &ProductDetail{Product: product, Inventory: inv}
	if invErr != nil {
		uc.log.Warn().Int("producto", productID).Err(invErr).Msg("inventario no disponible en la vista de detalle")
		detail.InventoryError = "No se pudo cargar el inventario"
	}

	uc.notifier.Success("Producto Cargado",
		fmt.Sprintf("Producto %q cargado exitosamente", product.Name))
	return detail, nil
}

// ReloadInventory vuelve a consultar solo el inventario de la vista.
func (uc *DetailUseCase) ReloadInventory(ctx context.Context, productID int) (*entity.Inventory, error) {
	inv, err := uc.inventory.GetQuantity(ctx, productID)
	if err != nil {
		uc.notifier.Error("Error", err.Error())
		return nil, err
	}
	uc.notifier.Info("Inventario Actualizado", "Inventario actualizado")
	return inv, nil
}

// RequestedQuantity devuelve la cantidad a comprar actual.
func (uc *DetailUseCase) RequestedQuantity() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.requested
}

// SetRequestedQuantity fija la cantidad a comprar (mínimo 1).
func (uc *DetailUseCase) SetRequestedQuantity(q int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if q < 1 {
		q = 1
	}
	uc.requested = q
}

// IncrementQuantity aumenta la cantidad sin exceder el stock disponible.
func (uc *DetailUseCase) IncrementQuantity(inv *entity.Inventory) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.requested < maxQuantity(inv) {
		uc.requested++
	}
}

// DecrementQuantity reduce la cantidad sin bajar de 1.
func (uc *DetailUseCase) DecrementQuantity() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.requested > 1 {
		uc.requested--
	}
}

// CanPurchase indica si la compra está habilitada: inventario cargado, stock
// positivo, 1 ≤ solicitada ≤ stock y ninguna compra ya en curso.
func (uc *DetailUseCase) CanPurchase(inv *entity.Inventory) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return inv != nil &&
		inv.Quantity > 0 &&
		uc.requested > 0 &&
		uc.requested <= inv.Quantity &&
		!uc.inFlight
}

// MaxPurchaseQuantity máxima cantidad comprable según el inventario cargado.
func (uc *DetailUseCase) MaxPurchaseQuantity(inv *entity.Inventory) int {
	return maxQuantity(inv)
}

// TotalPrice precio total de la compra: precio unitario × cantidad solicitada.
func (uc *DetailUseCase) TotalPrice(product *entity.Product) decimal.Decimal {
	if product == nil {
		return decimal.Zero
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return product.Price.Mul(decimal.NewFromInt(int64(uc.requested)))
}

// Purchase ejecuta la compra si la guarda lo permite; si no, no se emite
// ninguna petición. En éxito devuelve el inventario autoritativo post-compra,
// emite la notificación con el total (precio × cantidad original, calculado
// antes del reset) y restablece la cantidad solicitada a 1. En fallo emite la
// notificación de error y el inventario mostrado queda intacto.
func (uc *DetailUseCase) Purchase(ctx context.Context, product *entity.Product, inv *entity.Inventory) (*entity.Inventory, error) {
	uc.mu.Lock()
	if uc.inFlight {
		uc.mu.Unlock()
		return nil, domain.ErrPurchaseInFlight
	}
	requested := uc.requested
	if product == nil || inv == nil || inv.Quantity <= 0 || requested <= 0 || requested > inv.Quantity {
		uc.mu.Unlock()
		return nil, domain.ErrInsufficientStock
	}
	uc.inFlight = true
	uc.mu.Unlock()

	defer func() {
		uc.mu.Lock()
		uc.inFlight = false
		uc.mu.Unlock()
	}()

	// Total con la cantidad original, antes de restablecerla.
	total := product.Price.Mul(decimal.NewFromInt(int64(requested)))

	updated, err := uc.inventory.Purchase(ctx, inv.ProductID, requested)
	if err != nil {
		uc.notifier.Error("Error de Compra", err.Error())
		return nil, err
	}

	uc.notifier.Success("Compra Exitosa",
		fmt.Sprintf("¡Compra exitosa! %d unidades por $%s", requested, total.StringFixed(2)))

	uc.mu.Lock()
	uc.requested = 1
	uc.mu.Unlock()

	uc.log.Info().
		Int("producto", inv.ProductID).
		Int("cantidad", requested).
		Int("stock_restante", updated.Quantity).
		Msg("compra procesada exitosamente")
	return updated, nil
}

func maxQuantity(inv *entity.Inventory) int {
	if inv == nil {
		return 0
	}
	return inv.Quantity
}
