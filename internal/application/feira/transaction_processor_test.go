package feira_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
)

func TestRecordSale_Success(t *testing.T) {
	inv := newInventory(t, camiseta(10))
	sessions := feira.NewSessionManager()
	sessions.Open(nil)
	events := &recordingBroadcaster{}
	proc := feira.NewTransactionProcessor(inv, sessions, events)

	sale, err := proc.RecordSale(context.Background(), feira.SaleInput{
		ProductID: "p1", Quantity: 2, CustomerName: "Ana", VendorName: "Joao",
	})
	require.NoError(t, err)

	p, _ := inv.Get("p1")
	assert.Equal(t, 8, p.Stock)
	assert.Equal(t, 2, p.UnitsSold)

	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, 2, sale.Quantity)
	assert.Equal(t, "Ana", sale.CustomerName)
	assert.Equal(t, "Joao", sale.VendorName)
	assert.Equal(t, "MarcaA", sale.Product.Brand)
	assert.Equal(t, "M", sale.Product.Model)
	assert.False(t, sale.Timestamp.IsZero())

	active, _ := sessions.Active()
	require.Len(t, active.Sales, 1)
	assert.Equal(t, sale.ID, active.Sales[0].ID)

	// El snapshot no cambia si luego se ajusta el stock.
	_, err = inv.SetStock("p1", 100)
	require.NoError(t, err)
	active, _ = sessions.Active()
	assert.Equal(t, "MarcaA", active.Sales[0].Product.Brand)
	assert.Equal(t, "Camiseta XYZ", active.Sales[0].Product.Name)
}

func TestRecordSale_BroadcastsSaleThenStock(t *testing.T) {
	inv := newInventory(t, camiseta(10))
	sessions := feira.NewSessionManager()
	sessions.Open(nil)
	events := &recordingBroadcaster{}
	proc := feira.NewTransactionProcessor(inv, sessions, events)

	sale, err := proc.RecordSale(context.Background(), feira.SaleInput{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	got := events.all()
	require.Len(t, got, 2)
	assert.Equal(t, entity.EventSaleRecorded, got[0].Event.Name)
	assert.Equal(t, entity.AudienceAll, got[0].Audience)
	assert.Equal(t, sale.ID, got[0].Event.Payload.(dto.SaleResponse).ID)

	assert.Equal(t, entity.EventStockChanged, got[1].Event.Name)
	assert.Equal(t, entity.AudienceAll, got[1].Audience)
	assert.Equal(t, dto.StockChanged{ProductID: "p1", Stock: 7}, got[1].Event.Payload)
}

func TestRecordSale_DefaultNames(t *testing.T) {
	inv := newInventory(t, camiseta(10))
	sessions := feira.NewSessionManager()
	sessions.Open(nil)
	proc := feira.NewTransactionProcessor(inv, sessions, nil)

	sale, err := proc.RecordSale(context.Background(), feira.SaleInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCustomerName, sale.CustomerName)
	assert.Equal(t, entity.DefaultVendorName, sale.VendorName)
}

func TestRecordSale_NoActiveSession(t *testing.T) {
	inv := newInventory(t, camiseta(10))
	events := &recordingBroadcaster{}
	proc := feira.NewTransactionProcessor(inv, feira.NewSessionManager(), events)

	_, err := proc.RecordSale(context.Background(), feira.SaleInput{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	p, _ := inv.Get("p1")
	assert.Equal(t, 10, p.Stock, "sin feria no hay cambio de stock")
	assert.Equal(t, 0, p.UnitsSold)
	assert.Empty(t, events.all(), "sin feria no hay broadcast")
}

func TestRecordSale_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		in   feira.SaleInput
		want error
	}{
		{"producto desconocido", feira.SaleInput{ProductID: "nope", Quantity: 1}, domain.ErrNotFound},
		{"stock insuficiente", feira.SaleInput{ProductID: "p1", Quantity: 11}, domain.ErrInsufficientStock},
		{"cantidad cero", feira.SaleInput{ProductID: "p1", Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", feira.SaleInput{ProductID: "p1", Quantity: -2}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := newInventory(t, camiseta(10))
			sessions := feira.NewSessionManager()
			sessions.Open(nil)
			events := &recordingBroadcaster{}
			proc := feira.NewTransactionProcessor(inv, sessions, events)

			_, err := proc.RecordSale(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)

			p, _ := inv.Get("p1")
			assert.Equal(t, 10, p.Stock)
			active, _ := sessions.Active()
			assert.Empty(t, active.Sales)
			assert.Empty(t, events.all())
		})
	}
}

func TestRecordSale_CanceledContext(t *testing.T) {
	inv := newInventory(t, camiseta(10))
	sessions := feira.NewSessionManager()
	sessions.Open(nil)
	proc := feira.NewTransactionProcessor(inv, sessions, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := proc.RecordSale(ctx, feira.SaleInput{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

// Dos ventas concurrentes sobre el último ítem: exactamente una gana.
func TestRecordSale_ConcurrentLastUnit(t *testing.T) {
	for round := 0; round < 50; round++ {
		inv := newInventory(t, camiseta(1))
		sessions := feira.NewSessionManager()
		sessions.Open(nil)
		proc := feira.NewTransactionProcessor(inv, sessions, nil)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = proc.RecordSale(context.Background(), feira.SaleInput{ProductID: "p1", Quantity: 1})
			}(i)
		}
		wg.Wait()

		var ok, insufficient int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			}
		}
		require.Equal(t, 1, ok)
		require.Equal(t, 1, insufficient)

		p, _ := inv.Get("p1")
		require.Equal(t, 0, p.Stock)
		require.Equal(t, 1, p.UnitsSold)
	}
}
