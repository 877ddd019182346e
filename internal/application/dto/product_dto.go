package dto

import "encoding/json"

// ProductResponse salida de un producto del catálogo. Los precios viajan como
// número JSON con la representación exacta del decimal.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Price     json.Number `json:"price"`
	Stock     int             `json:"stock"`
	UnitsSold int             `json:"unitsSold"`
}

// PriceQuery entrada de price.query.
type PriceQuery struct {
	ProductID string `json:"productId"`
}

// PriceResult salida de price.result. Price es nil cuando el producto no existe.
type PriceResult struct {
	ProductID string           `json:"productId"`
	Price     *json.Number `json:"price"`
	Error     string           `json:"error,omitempty"`
}

// OutOfStockResult salida de outOfStock.result.
type OutOfStockResult struct {
	Products []ProductResponse `json:"products"`
}

// StockOverrideRequest entrada de stock.override (ajuste del admin).
// NewStock es puntero para distinguir "ausente" de cero.
type StockOverrideRequest struct {
	ProductID string `json:"productId"`
	NewStock  *int   `json:"newStock"`
}

// StockOverrideResult salida de stock.overrideResult.
type StockOverrideResult struct {
	OK        bool   `json:"ok"`
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}

// StockChanged payload del broadcast stock.changed.
type StockChanged struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}
