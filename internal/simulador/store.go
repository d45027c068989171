package simulador

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jjariza/productos-cliente/internal/domain"
	"github.com/jjariza/productos-cliente/internal/domain/entity"
)

// Store estado en memoria del simulador: productos e inventario por producto.
// El inventario guarda la cantidad "real" y una cantidad externa simulada que
// Sync reconcilia.
type Store struct {
	mu       sync.RWMutex
	nextID   int
	products map[int]entity.Product
	stock    map[int]int
	external map[int]int
}

// NewStore crea el store vacío.
func NewStore() *Store {
	return &Store{
		nextID:   1,
		products: make(map[int]entity.Product),
		stock:    make(map[int]int),
		external: make(map[int]int),
	}
}

// Seed carga un catálogo de ejemplo para desarrollo.
func (s *Store) Seed() {
	seed := []struct {
		name, description string
		price             string
		quantity          int
	}{
		{"Teclado mecánico", "Teclado mecánico retroiluminado", "59.99", 25},
		{"Mouse inalámbrico", "Mouse ergonómico 2.4 GHz", "19.90", 8},
		{"Monitor 27\"", "Monitor IPS 27 pulgadas 144 Hz", "249.00", 0},
		{"Audífonos", "Audífonos over-ear con cancelación de ruido", "89.50", 42},
	}
	for _, p := range seed {
		price, _ := decimal.NewFromString(p.price)
		created := s.CreateProduct(entity.Product{
			Name:        p.name,
			Description: p.description,
			Price:       price,
		})
		s.SetQuantity(*created.ID, p.quantity)
	}
}

// ListProducts devuelve la página pedida (orden estable por ID) y el total.
func (s *Store) ListProducts(page, size int) ([]entity.Product, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return *all[i].ID < *all[j].ID })

	total := len(all)
	if size <= 0 {
		size = 10
	}
	start := page * size
	if start >= total {
		return []entity.Product{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total
}

// GetProduct devuelve un producto por ID.
func (s *Store) GetProduct(id int) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// CreateProduct asigna ID e inicializa el inventario en cero.
func (s *Store) CreateProduct(p entity.Product) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	p.ID = &id
	s.products[id] = p
	s.stock[id] = 0
	s.external[id] = 0
	return p
}

// UpdateProduct aplica una actualización parcial.
func (s *Store) UpdateProduct(id int, patch entity.ProductPatch) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Imagen != nil {
		p.Imagen = *patch.Imagen
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	s.products[id] = p
	return p, nil
}

// DeleteProduct elimina producto e inventario asociado.
func (s *Store) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	delete(s.stock, id)
	delete(s.external, id)
	return nil
}

// Quantity devuelve la cantidad disponible de un producto.
func (s *Store) Quantity(productID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.stock[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return q, nil
}

// SetQuantity fija la cantidad disponible (y la fuente externa simulada).
func (s *Store) SetQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = quantity
	s.external[productID] = quantity
}

// Purchase decrementa el stock de forma transaccional.
func (s *Store) Purchase(productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	available, ok := s.stock[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity > available {
		return domain.ErrInsufficientStock
	}
	s.stock[productID] = available - quantity
	s.external[productID] = available - quantity
	return nil
}

// Sync reconcilia la cantidad local con la fuente externa simulada.
func (s *Store) Sync(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ext, ok := s.external[productID]
	if !ok {
		return domain.ErrNotFound
	}
	s.stock[productID] = ext
	return nil
}
