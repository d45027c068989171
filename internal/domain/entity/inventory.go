package entity

// Inventory cantidad disponible de un producto según el microservicio de
// inventario. Una entrada por producto; Quantity nunca es negativa.
type Inventory struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// StockStatus categorización del stock derivada de la cantidad y un umbral.
// No se almacena: se calcula siempre con GetStockStatus.
type StockStatus string

const (
	StockInStock    StockStatus = "in-stock"
	StockLowStock   StockStatus = "low-stock"
	StockOutOfStock StockStatus = "out-of-stock"
)

// GetStockStatus deriva el estado del stock a partir de la cantidad y el
// umbral de stock bajo (1..umbral = bajo, 0 = agotado).
func GetStockStatus(quantity, lowStockThreshold int) StockStatus {
	switch {
	case quantity == 0:
		return StockOutOfStock
	case quantity <= lowStockThreshold:
		return StockLowStock
	default:
		return StockInStock
	}
}

// Text devuelve la descripción corta del estado para la consola.
func (s StockStatus) Text() string {
	switch s {
	case StockInStock:
		return "En stock"
	case StockLowStock:
		return "Stock bajo"
	case StockOutOfStock:
		return "Sin stock"
	default:
		return "Estado desconocido"
	}
}

// PurchaseSimulation resultado de validar una compra sin ejecutarla.
type PurchaseSimulation struct {
	CanPurchase       bool
	AvailableQuantity int
}

// InventoryStatistics estadísticas calculadas sobre el cache de inventario.
type InventoryStatistics struct {
	TotalProducts      int
	TotalStock         int
	InStockProducts    int
	LowStockProducts   int
	OutOfStockProducts int
}
