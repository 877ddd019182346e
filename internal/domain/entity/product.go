package entity

import "github.com/shopspring/decimal"

// Product representa un artículo vendible en la feria.
// Stock y UnitsSold solo cambian vía InventoryStore (Decrement / SetStock).
type Product struct {
	ID        string
	Name      string
	Brand     string
	Model     string
	Price     decimal.Decimal // precio de venta (>= 0)
	Stock     int
	UnitsSold int // acumulado de ventas; los ajustes manuales de stock no lo tocan
}

// Snapshot devuelve los campos de identidad del producto para registrar en una venta.
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{ID: p.ID, Name: p.Name, Brand: p.Brand, Model: p.Model}
}
