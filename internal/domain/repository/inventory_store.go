package repository

import "github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"

// InventoryStore define el puerto del catálogo de la feria (DIP).
// Los métodos devuelven copias; el estado solo cambia vía Decrement y SetStock.
type InventoryStore interface {
	Add(product entity.Product) error
	Get(id string) (entity.Product, error)
	List() []entity.Product
	OutOfStock() []entity.Product
	// SetStock reemplaza el stock (ajuste del admin); no toca UnitsSold.
	SetStock(id string, newStock int) (entity.Product, error)
	// Decrement valida y descuenta stock de forma indivisible; suma la cantidad a UnitsSold.
	Decrement(id string, quantity int) (entity.Product, error)
}
