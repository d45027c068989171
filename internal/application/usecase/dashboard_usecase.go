package usecase

import (
	"time"

	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/domain/repository"
)

// DashboardUseCase resumen del estado de los caches para el tablero de
// inventario. Puramente local: no toca la red.
type DashboardUseCase struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
}

// DashboardSnapshot estadísticas combinadas de productos e inventario.
type DashboardSnapshot struct {
	Products   entity.ProductStatistics
	Inventory  entity.InventoryStatistics
	LastUpdate *time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, inventory repository.InventoryRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, inventory: inventory}
}

// Snapshot calcula las estadísticas sobre los snapshots actuales.
func (uc *DashboardUseCase) Snapshot() DashboardSnapshot {
	return DashboardSnapshot{
		Products:   uc.products.Statistics(),
		Inventory:  uc.inventory.Statistics(),
		LastUpdate: uc.products.LoadingState().Value().LastUpdate,
	}
}
