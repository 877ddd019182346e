package entity

// Totals resumen de cantidades vendidas, agrupadas por marca y por modelo.
type Totals struct {
	TotalItems int
	ByBrand    map[string]int
	ByModel    map[string]int
}

// NewTotals devuelve un resumen vacío con los mapas inicializados.
func NewTotals() Totals {
	return Totals{ByBrand: map[string]int{}, ByModel: map[string]int{}}
}

// Add acumula una venta en el resumen.
func (t *Totals) Add(s Sale) {
	t.TotalItems += s.Quantity
	t.ByBrand[s.Product.Brand] += s.Quantity
	t.ByModel[s.Product.Model] += s.Quantity
}
