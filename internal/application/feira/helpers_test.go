package feira_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/infrastructure/memory"
)

// published evento capturado por recordingBroadcaster.
type published struct {
	Audience entity.Audience
	Event    entity.Event
}

// recordingBroadcaster guarda los eventos en orden de publicación.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []published
}

func (r *recordingBroadcaster) Publish(audience entity.Audience, event entity.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{Audience: audience, Event: event})
}

func (r *recordingBroadcaster) all() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]published, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingBroadcaster) names() []string {
	var out []string
	for _, p := range r.all() {
		out = append(out, p.Event.Name)
	}
	return out
}

func camiseta(stock int) entity.Product {
	return entity.Product{ID: "p1", Name: "Camiseta XYZ", Brand: "MarcaA", Model: "M", Price: decimal.NewFromFloat(50.0), Stock: stock}
}

func caneca(stock int) entity.Product {
	return entity.Product{ID: "p2", Name: "Caneca Legal", Brand: "MarcaB", Model: "C1", Price: decimal.NewFromFloat(25.0), Stock: stock}
}

func newInventory(t *testing.T, products ...entity.Product) *memory.InventoryStore {
	t.Helper()
	store := memory.NewInventoryStore()
	require.NoError(t, memory.Seed(store, products))
	return store
}
