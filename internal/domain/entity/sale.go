package entity

import "time"

// Nombres por defecto cuando la venta llega sin cliente o vendedor.
const (
	DefaultCustomerName = "Anon"
	DefaultVendorName   = "Vendedor"
)

// ProductSnapshot identidad del producto al momento de la venta (sin stock).
type ProductSnapshot struct {
	ID    string
	Name  string
	Brand string
	Model string
}

// Sale representa una venta confirmada dentro de una feria abierta. Inmutable.
type Sale struct {
	ID           string
	Product      ProductSnapshot
	Quantity     int
	CustomerName string
	VendorName   string
	Timestamp    time.Time
}
