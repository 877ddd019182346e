package ws

import (
	"sync"

	"github.com/google/uuid"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
)

// outboundBuffer tamaño de la cola de salida por conexión. Si se llena, el hub
// desconecta al cliente lento en lugar de bloquear al que publica.
const outboundBuffer = 64

// Client una conexión registrada en el hub.
type Client struct {
	id       string
	audience entity.Audience
	send     chan []byte
	done     chan struct{}
	once     sync.Once
}

// NewClient crea un cliente para la audiencia indicada.
func NewClient(audience entity.Audience) *Client {
	return &Client{
		id:       uuid.New().String(),
		audience: audience,
		send:     make(chan []byte, outboundBuffer),
		done:     make(chan struct{}),
	}
}

// ID identificador de la conexión.
func (c *Client) ID() string { return c.id }

// Audience audiencia a la que pertenece la conexión.
func (c *Client) Audience() entity.Audience { return c.audience }

// Outbound cola de mensajes serializados pendientes de escribir.
func (c *Client) Outbound() <-chan []byte { return c.send }

// Done se cierra cuando el hub da de baja al cliente.
func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) close() {
	c.once.Do(func() { close(c.done) })
}
