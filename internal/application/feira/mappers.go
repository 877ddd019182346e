package feira

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
)

func saleRecordedEvent(s entity.Sale) entity.Event {
	return entity.Event{Name: entity.EventSaleRecorded, Payload: toSaleResponse(s)}
}

func stockChangedEvent(p entity.Product) entity.Event {
	return entity.Event{Name: entity.EventStockChanged, Payload: dto.StockChanged{ProductID: p.ID, Stock: p.Stock}}
}

func sessionOpenedEvent(s entity.Session) entity.Event {
	return entity.Event{Name: entity.EventSessionOpened, Payload: dto.SessionOpened{Session: toSessionResponse(s)}}
}

func sessionClosedEvent(s entity.Session) entity.Event {
	return entity.Event{Name: entity.EventSessionClosed, Payload: dto.SessionClosed{Session: toSessionResponse(s)}}
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Model:     p.Model,
		Price:     priceNumber(p.Price),
		Stock:     p.Stock,
		UnitsSold: p.UnitsSold,
	}
}

func toProductResponses(list []entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toSaleResponse(s entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID: s.ID,
		Product: dto.ProductSnapshotResponse{
			ID:    s.Product.ID,
			Name:  s.Product.Name,
			Brand: s.Product.Brand,
			Model: s.Product.Model,
		},
		Quantity:     s.Quantity,
		CustomerName: s.CustomerName,
		VendorName:   s.VendorName,
		Timestamp:    s.Timestamp,
	}
}

func toSessionResponse(s entity.Session) dto.SessionResponse {
	sales := make([]dto.SaleResponse, 0, len(s.Sales))
	for _, sale := range s.Sales {
		sales = append(sales, toSaleResponse(sale))
	}
	return dto.SessionResponse{
		ID:              s.ID,
		StartedAt:       s.StartedAt,
		ClosedAt:        s.ClosedAt,
		NextScheduledAt: s.NextScheduledAt,
		Sales:           sales,
	}
}

func toTotalsResponse(t entity.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{TotalItems: t.TotalItems, ByBrand: t.ByBrand, ByModel: t.ByModel}
}

// priceNumber renderiza el decimal como número JSON sin pasar por float64.
func priceNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
