package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/logger"
)

var _ feira.Broadcaster = (*Hub)(nil)

// ErrClientGone el cliente ya no está registrado o su cola está llena.
var ErrClientGone = errors.New("cliente desconectado")

// Hub registro de conexiones por audiencia. Publish serializa el evento una vez y
// hace envíos no bloqueantes a la cola de cada cliente; nunca escribe en la red.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	log     *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{clients: make(map[*Client]struct{}), log: log}
}

// Register agrega el cliente.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Unregister quita el cliente y cierra su Done. Idempotente.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// Count conexiones registradas que pertenecen a la audiencia (AudienceAll = todas).
func (h *Hub) Count(audience entity.Audience) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.clients {
		if audience.Includes(c.audience) {
			n++
		}
	}
	return n
}

// Publish implementa feira.Broadcaster.
func (h *Hub) Publish(audience entity.Audience, event entity.Event) {
	data, err := json.Marshal(Message{Event: event.Name, Data: event.Payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event.Name).Msg("serializar evento")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if audience.Includes(c.audience) {
			h.deliver(c, data)
		}
	}
}

// Send entrega un mensaje solo al cliente indicado.
func (h *Hub) Send(c *Client, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", msg.Event, err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return ErrClientGone
	}
	if !h.deliver(c, data) {
		return ErrClientGone
	}
	return nil
}

// Close da de baja a todos los clientes (apagado).
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}

// deliver envío no bloqueante. Debe llamarse con h.mu tomado.
func (h *Hub) deliver(c *Client, data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		h.log.Warn().Str("client", c.id).Str("audience", c.audience.String()).Msg("cola de salida llena, desconectando cliente")
		h.remove(c)
		return false
	}
}

func (h *Hub) remove(c *Client) {
	delete(h.clients, c)
	c.close()
}
