package feira

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/repository"
)

// SaleInput entrada para registrar una venta.
type SaleInput struct {
	ProductID    string
	Quantity     int
	CustomerName string
	VendorName   string
}

// TransactionProcessor valida y aplica una venta contra el inventario y la feria activa.
type TransactionProcessor struct {
	inventory repository.InventoryStore
	sessions  *SessionManager
	events    Broadcaster
	now       func() time.Time
}

// NewTransactionProcessor construye el procesador. events puede ser nil.
func NewTransactionProcessor(inventory repository.InventoryStore, sessions *SessionManager, events Broadcaster) *TransactionProcessor {
	if events == nil {
		events = NopBroadcaster{}
	}
	return &TransactionProcessor{
		inventory: inventory,
		sessions:  sessions,
		events:    events,
		now:       time.Now,
	}
}

// RecordSale registra la venta en la feria activa.
//
// Orden de validación: feria activa, cantidad > 0, producto existente, stock suficiente.
// El stock se verifica y descuenta en una sola llamada (Decrement) mientras se mantiene
// el lock de la feria; sale.recorded y stock.changed se publican solo después de
// confirmar ambos cambios.
func (p *TransactionProcessor) RecordSale(ctx context.Context, in SaleInput) (entity.Sale, error) {
	if err := ctx.Err(); err != nil {
		return entity.Sale{}, err
	}
	var sale entity.Sale
	err := p.sessions.WithActive(func(s *entity.Session) error {
		if in.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		product, err := p.inventory.Decrement(in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		sale = entity.Sale{
			ID:           uuid.New().String(),
			Product:      product.Snapshot(),
			Quantity:     in.Quantity,
			CustomerName: orDefault(in.CustomerName, entity.DefaultCustomerName),
			VendorName:   orDefault(in.VendorName, entity.DefaultVendorName),
			Timestamp:    p.now(),
		}
		s.Sales = append(s.Sales, sale)

		p.events.Publish(entity.AudienceAll, saleRecordedEvent(sale))
		p.events.Publish(entity.AudienceAll, stockChangedEvent(product))
		return nil
	})
	if err != nil {
		return entity.Sale{}, err
	}
	return sale, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
