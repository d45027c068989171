package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jjariza/productos-cliente/internal/application/dto"
	"github.com/jjariza/productos-cliente/internal/application/notification"
	"github.com/jjariza/productos-cliente/internal/application/usecase"
	"github.com/jjariza/productos-cliente/internal/domain/entity"
	"github.com/jjariza/productos-cliente/internal/infrastructure/rest"
	"github.com/jjariza/productos-cliente/pkg/config"
	"github.com/jjariza/productos-cliente/pkg/logger"
)

// Consola de demostración del cliente: lista el catálogo con su stock,
// muestra el detalle de un producto y ejecuta compras contra los
// microservicios (reales o el simulador local).
//
//	console listar [pagina]
//	console detalle <id>
//	console comprar <id> <cantidad>
//	console sincronizar <id>
//	console tablero
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "warn",
	})

	productsClient := rest.NewClient(cfg.Products.BaseURL, cfg.Auth, cfg.HTTP, log)
	inventoryClient := rest.NewClient(cfg.Inventory.BaseURL, cfg.Auth, cfg.HTTP, log)

	products := rest.NewProductRepository(productsClient, log)
	inventory := rest.NewInventoryRepository(inventoryClient, cfg.Stock.LowStockThreshold, log)
	notifier := notification.NewService(cfg.Notifications.AutoHideDelay, log)

	// Las notificaciones se imprimen conforme se emiten.
	seen := map[string]bool{}
	notifier.Notifications().Subscribe(func(list []entity.Notification) {
		for _, n := range list {
			if !seen[n.ID] {
				seen[n.ID] = true
				fmt.Printf("  [%s] %s: %s\n", n.Type, n.Title, n.Message)
			}
		}
	})

	catalog := usecase.NewCatalogUseCase(products, inventory, notifier,
		cfg.Pagination.DefaultPageSize, cfg.Stock.LowStockThreshold, log)
	detail := usecase.NewDetailUseCase(products, inventory, notifier, log)
	dashboard := usecase.NewDashboardUseCase(products, inventory)

	ctx := context.Background()
	args := os.Args[1:]
	command := "listar"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "listar":
		page := 0
		if len(args) > 1 {
			page = atoiOr(args[1], 0)
		}
		runList(ctx, catalog, page)

	case "detalle":
		if len(args) < 2 {
			usage()
		}
		runDetail(ctx, detail, atoiOr(args[1], 0))

	case "comprar":
		if len(args) < 3 {
			usage()
		}
		runPurchase(ctx, detail, atoiOr(args[1], 0), atoiOr(args[2], 0))

	case "sincronizar":
		if len(args) < 2 {
			usage()
		}
		id := atoiOr(args[1], 0)
		if err := inventory.Sync(ctx, id); err != nil {
			fmt.Fprintln(os.Stderr, "sincronización fallida:", err)
			os.Exit(1)
		}
		notifier.SyncCompleted(fmt.Sprintf("producto %d", id))

	case "tablero":
		runList(ctx, catalog, 0)
		snap := dashboard.Snapshot()
		fmt.Printf("\nProductos: %d | Precio promedio: $%s | Sin stock: %d | Stock bajo: %d | Unidades totales: %d\n",
			snap.Products.TotalProducts,
			snap.Products.AveragePrice.StringFixed(2),
			snap.Inventory.OutOfStockProducts,
			snap.Inventory.LowStockProducts,
			snap.Inventory.TotalStock)

	default:
		usage()
	}
}

func runList(ctx context.Context, catalog *usecase.CatalogUseCase, page int) {
	result, err := catalog.LoadPage(ctx, dto.PaginationOptions{Page: page})
	if err != nil {
		fmt.Fprintln(os.Stderr, "carga del catálogo fallida:", err)
		os.Exit(1)
	}
	fmt.Printf("Página %d de %d (%d productos)\n", result.Page+1, result.TotalPages, result.TotalRecords)
	for _, item := range result.Items {
		quantity := 0
		if item.Inventory != nil {
			quantity = item.Inventory.Quantity
		}
		fmt.Printf("  #%d %-30s $%8s  %3d uds  %s\n",
			idOf(item.Product), item.Name,
			item.Price.StringFixed(2),
			quantity, item.StockStatus.Text())
	}
}

func runDetail(ctx context.Context, detail *usecase.DetailUseCase, id int) {
	d, err := detail.Load(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "carga del producto fallida:", err)
		os.Exit(1)
	}
	fmt.Printf("#%d %s\n", idOf(*d.Product), d.Product.Name)
	fmt.Printf("  %s\n", d.Product.Description)
	fmt.Printf("  Precio: $%s\n", d.Product.Price.StringFixed(2))
	if d.Inventory != nil {
		fmt.Printf("  Stock: %d unidades\n", d.Inventory.Quantity)
	} else {
		fmt.Printf("  Stock: %s\n", d.InventoryError)
	}
}

func runPurchase(ctx context.Context, detail *usecase.DetailUseCase, id, quantity int) {
	d, err := detail.Load(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "carga del producto fallida:", err)
		os.Exit(1)
	}
	detail.SetRequestedQuantity(quantity)
	if !detail.CanPurchase(d.Inventory) {
		fmt.Fprintln(os.Stderr, "compra no permitida con el stock actual")
		os.Exit(1)
	}
	fmt.Printf("Total a pagar: $%s\n", detail.TotalPrice(d.Product).StringFixed(2))

	updated, err := detail.Purchase(ctx, d.Product, d.Inventory)
	if err != nil {
		os.Exit(1)
	}
	fmt.Printf("Stock restante: %d unidades\n", updated.Quantity)
}

func idOf(p entity.Product) int {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: console [listar [pagina] | detalle <id> | comprar <id> <cantidad> | sincronizar <id> | tablero]")
	os.Exit(1)
}
