package usecase

import (
	"context"

	"github.com/jjariza/productos-cliente/internal/application/dto"
	"github.com/jjariza/productos-cliente/internal/application/notification"
	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/domain/repository"
	"github.com/jjariza/productos-cliente/pkg/logger"
)

// CatalogUseCase vista de listado: carga una página de productos, la combina
// con el stock de cada uno (mejor esfuerzo) y deriva el estado categórico.
type CatalogUseCase struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	notifier  *notification.Service
	log       *logger.Logger
	pageSize  int
	threshold int
}

// CatalogPage página del catálogo con inventario incorporado.
type CatalogPage struct {
	Items        []entity.ProductWithInventory
	Page         int
	Size         int
	TotalRecords int
	TotalPages   int
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	notifier *notification.Service,
	pageSize, lowStockThreshold int,
	log *logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		products:  products,
		inventory: inventory,
		notifier:  notifier,
		log:       log.Component("catalogo"),
		pageSize:  pageSize,
		threshold: lowStockThreshold,
	}
}

// LoadPage carga la página pedida y consulta el stock de todos sus productos
// en paralelo. Los fallos individuales de inventario no tumban la página:
// esos productos quedan con cantidad cero.
func (uc *CatalogUseCase) LoadPage(ctx context.Context, opts dto.PaginationOptions) (*CatalogPage, error) {
	opts = opts.WithDefaults(uc.pageSize)

	productPage, err := uc.products.List(ctx, opts.Page, opts.Size)
	if err != nil {
		uc.notifier.Error("Error", err.Error())
		return nil, err
	}

	ids := make([]int, 0, len(productPage.Items))
	for _, p := range productPage.Items {
		if p.ID != nil {
			ids = append(ids, *p.ID)
		}
	}
	stock := uc.inventory.GetMany(ctx, ids)

	items := make([]entity.ProductWithInventory, 0, len(productPage.Items))
	for _, p := range productPage.Items {
		item := entity.ProductWithInventory{Product: p, StockStatus: entity.StockOutOfStock}
		if p.ID != nil {
			if inv, ok := stock[*p.ID]; ok {
				invCopy := inv
				item.Inventory = &invCopy
				item.StockStatus = entity.GetStockStatus(inv.Quantity, uc.threshold)
			}
		}
		items = append(items, item)
	}

	uc.notifier.DataLoaded("productos", len(items))
	uc.log.Debug().Int("pagina", opts.Page).Int("productos", len(items)).Msg("página del catálogo cargada")

	return &CatalogPage{
		Items:        items,
		Page:         productPage.Page,
		Size:         productPage.Size,
		TotalRecords: productPage.TotalRecords,
		TotalPages:   productPage.TotalPages,
	}, nil
}

// Filter búsqueda local sobre el cache de la última página.
func (uc *CatalogUseCase) Filter(filters entity.ProductFilters) []entity.Product {
	return uc.products.SearchLocal(filters)
}

// Sort ordenamiento local sobre el cache de la última página.
func (uc *CatalogUseCase) Sort(opts entity.ProductSortOptions) []entity.Product {
	return uc.products.SortLocal(opts)
}

// PageWindow devuelve la ventana de páginas a mostrar en el paginador,
// centrada en la página actual (máximo maxPages entradas).
func (uc *CatalogUseCase) PageWindow(current, totalPages, maxPages int) []int {
	if totalPages <= 0 || maxPages <= 0 {
		return nil
	}
	start := current - maxPages/2
	if start < 0 {
		start = 0
	}
	end := start + maxPages
	if end > totalPages {
		end = totalPages
		if start = end - maxPages; start < 0 {
			start = 0
		}
	}
	pages := make([]int, 0, end-start)
	for p := start; p < end; p++ {
		pages = append(pages, p)
	}
	return pages
}
