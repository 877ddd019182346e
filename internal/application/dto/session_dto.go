package dto

import "time"

// ProductSnapshotResponse identidad del producto registrada en la venta.
type ProductSnapshotResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// SaleResponse salida de una venta (payload de sale.recorded).
type SaleResponse struct {
	ID           string                  `json:"id"`
	Product      ProductSnapshotResponse `json:"product"`
	Quantity     int                     `json:"quantity"`
	CustomerName string                  `json:"customerName"`
	VendorName   string                  `json:"vendorName"`
	Timestamp    time.Time               `json:"timestamp"`
}

// SessionResponse salida de una feria.
type SessionResponse struct {
	ID              string         `json:"id"`
	StartedAt       time.Time      `json:"startedAt"`
	ClosedAt        *time.Time     `json:"closedAt,omitempty"`
	NextScheduledAt *time.Time     `json:"nextScheduledAt,omitempty"`
	Sales           []SaleResponse `json:"sales"`
}

// SaleSubmitRequest entrada de sale.submit.
type SaleSubmitRequest struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
	VendorName   string `json:"vendorName"`
}

// SessionOpenRequest entrada de session.open.
type SessionOpenRequest struct {
	NextScheduledAt *time.Time `json:"nextScheduledAt,omitempty"`
}

// SessionOpened salida de session.opened (respuesta y broadcast).
type SessionOpened struct {
	Session     SessionResponse `json:"session"`
	AlreadyOpen bool            `json:"alreadyOpen"`
}

// SessionClosed payload del broadcast session.closed.
type SessionClosed struct {
	Session SessionResponse `json:"session"`
}

// SessionState salida de session.result.
type SessionState struct {
	Open    bool             `json:"open"`
	Session *SessionResponse `json:"session,omitempty"`
}

// FeiraSnapshot salida del endpoint de inspección GET /feira.
type FeiraSnapshot struct {
	Active  *SessionResponse  `json:"active"`
	History []SessionResponse `json:"history"`
}
