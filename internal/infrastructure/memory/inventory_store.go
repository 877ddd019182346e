package memory

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/repository"
)

var _ repository.InventoryStore = (*InventoryStore)(nil)

// InventoryStore catálogo en memoria. El mapa da acceso O(1) por ID y order
// conserva el orden de inserción para List.
type InventoryStore struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	order    []string
}

// NewInventoryStore construye el catálogo vacío.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{products: make(map[string]*entity.Product)}
}

// Add registra un producto nuevo (carga inicial del catálogo).
func (s *InventoryStore) Add(p entity.Product) error {
	if p.ID == "" || p.Stock < 0 || p.UnitsSold < 0 || p.Price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; ok {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrDuplicate)
	}
	s.products[p.ID] = &p
	s.order = append(s.order, p.ID)
	return nil
}

// Get obtiene una copia del producto.
func (s *InventoryStore) Get(id string) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	return *p, nil
}

// List devuelve todo el catálogo en orden de inserción.
func (s *InventoryStore) List() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.products[id])
	}
	return out
}

// OutOfStock devuelve los productos sin stock.
func (s *InventoryStore) OutOfStock() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0)
	for _, id := range s.order {
		if p := s.products[id]; p.Stock <= 0 {
			out = append(out, *p)
		}
	}
	return out
}

// SetStock reemplaza el stock de forma absoluta. UnitsSold no cambia.
func (s *InventoryStore) SetStock(id string, newStock int) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	if newStock < 0 {
		return entity.Product{}, domain.ErrInvalidInput
	}
	p.Stock = newStock
	return *p, nil
}

// Decrement verifica Stock >= quantity y descuenta bajo el mismo lock de escritura,
// de modo que dos ventas concurrentes no pueden dejar el stock negativo.
func (s *InventoryStore) Decrement(id string, quantity int) (entity.Product, error) {
	if quantity <= 0 {
		return entity.Product{}, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	if p.Stock < quantity {
		return entity.Product{}, domain.ErrInsufficientStock
	}
	p.Stock -= quantity
	p.UnitsSold += quantity
	return *p, nil
}
