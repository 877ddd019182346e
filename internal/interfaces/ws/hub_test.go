package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
)

// drain lee sin bloquear todos los mensajes pendientes del cliente.
func drain(t *testing.T, c *Client) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case raw := <-c.Outbound():
			var m map[string]any
			require.NoError(t, json.Unmarshal(raw, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

func events(msgs []map[string]any) []string {
	var out []string
	for _, m := range msgs {
		out = append(out, m["event"].(string))
	}
	return out
}

func TestHub_PublishRoutesByAudience(t *testing.T) {
	hub := NewHub(nil)
	buyer := NewClient(entity.AudienceBuyers)
	seller := NewClient(entity.AudienceSellers)
	hub.Register(buyer)
	hub.Register(seller)

	hub.Publish(entity.AudienceAll, entity.Event{Name: "a"})
	hub.Publish(entity.AudienceSellers, entity.Event{Name: "b"})
	hub.Publish(entity.AudienceBuyers, entity.Event{Name: "c"})

	assert.Equal(t, []string{"a", "c"}, events(drain(t, buyer)))
	assert.Equal(t, []string{"a", "b"}, events(drain(t, seller)))
}

func TestHub_SendOnlyReachesTarget(t *testing.T) {
	hub := NewHub(nil)
	one := NewClient(entity.AudienceBuyers)
	two := NewClient(entity.AudienceBuyers)
	hub.Register(one)
	hub.Register(two)

	require.NoError(t, hub.Send(one, Message{Event: "price.result", RequestID: "r1"}))

	got := drain(t, one)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0]["requestId"])
	assert.Empty(t, drain(t, two))
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := NewHub(nil)
	c := NewClient(entity.AudienceBuyers)
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done debe cerrarse al dar de baja")
	}
	hub.Publish(entity.AudienceAll, entity.Event{Name: "a"})
	assert.Empty(t, drain(t, c))
	assert.ErrorIs(t, hub.Send(c, Message{Event: "x"}), ErrClientGone)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	slow := NewClient(entity.AudienceBuyers)
	hub.Register(slow)

	for i := 0; i < outboundBuffer+1; i++ {
		hub.Publish(entity.AudienceAll, entity.Event{Name: "tick"})
	}

	assert.Equal(t, 0, hub.Count(entity.AudienceAll))
	select {
	case <-slow.Done():
	default:
		t.Fatal("el cliente lento debe ser desconectado")
	}
}

func TestHub_CountAndClose(t *testing.T) {
	hub := NewHub(nil)
	hub.Register(NewClient(entity.AudienceBuyers))
	hub.Register(NewClient(entity.AudienceBuyers))
	hub.Register(NewClient(entity.AudienceSellers))

	assert.Equal(t, 2, hub.Count(entity.AudienceBuyers))
	assert.Equal(t, 1, hub.Count(entity.AudienceSellers))
	assert.Equal(t, 3, hub.Count(entity.AudienceAll))

	hub.Close()
	assert.Equal(t, 0, hub.Count(entity.AudienceAll))
}
