// Package ws implementa los canales bidireccionales de la feria: el hub que
// difunde eventos por audiencia y el despacho de mensajes de clientes y vendedores.
//
// Cada mensaje viaja en un Envelope {event, requestId, data}. Las respuestas
// puntuales repiten el requestId recibido; si el cliente no lo envía, debe
// tener como máximo una consulta pendiente de cada tipo.
package ws

import "encoding/json"

// Eventos entrantes.
const (
	EventPriceQuery      = "price.query"
	EventOutOfStockQuery = "outOfStock.query"
	EventSessionQuery    = "session.query"
	EventSaleSubmit      = "sale.submit"

	EventSessionOpen   = "session.open"
	EventSessionClose  = "session.close"
	EventStockOverride = "stock.override"
	EventReportTotals  = "report.totals"
	EventReportByBrand = "report.byBrand"
	EventReportByModel = "report.byModel"
)

// Respuestas puntuales (solo al solicitante).
const (
	EventPriceResult         = "price.result"
	EventOutOfStockResult    = "outOfStock.result"
	EventSessionResult       = "session.result"
	EventSessionOpenedReply  = "session.opened"
	EventStockOverrideResult = "stock.overrideResult"
	EventReportTotalsResult  = "report.totals.result"
	EventReportByBrandResult = "report.byBrand.result"
	EventReportByModelResult = "report.byModel.result"
	EventError               = "error"
)

// Envelope mensaje entrante.
type Envelope struct {
	Event     string          `json:"event"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Message mensaje saliente (respuesta o broadcast).
type Message struct {
	Event     string `json:"event"`
	RequestID string `json:"requestId,omitempty"`
	Data      any    `json:"data,omitempty"`
}
