// Package pubsub replica los eventos de la feria en canales pub/sub de Redis
// para que otros procesos (paneles, auditoría) los consuman.
//
// Hay un canal por audiencia: <prefijo>:cliente y <prefijo>:vendedor. Cada canal
// recibe lo mismo que las conexiones WebSocket de esa audiencia; los eventos
// dirigidos a ambas audiencias se publican en los dos canales.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/config"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/logger"
)

const (
	mirrorBuffer   = 256
	publishTimeout = 2 * time.Second
)

var _ feira.Broadcaster = (*EventMirror)(nil)

// mirrored mensaje publicado en Redis.
type mirrored struct {
	Event     string    `json:"event"`
	Audience  string    `json:"audience"`
	Data      any       `json:"data,omitempty"`
	Published time.Time `json:"publishedAt"`
}

type outgoing struct {
	channel string
	payload []byte
}

// EventMirror publica cada evento en los canales de las audiencias que alcanza. Publish encola y
// retorna de inmediato; un goroutine hace el PUBLISH. Si la cola se llena el
// evento se descarta (los clientes WebSocket ya lo recibieron).
type EventMirror struct {
	client *redis.Client
	prefix string
	log    *logger.Logger
	queue  chan outgoing
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewEventMirror arranca el goroutine de publicación.
func NewEventMirror(client *redis.Client, prefix string, log *logger.Logger) *EventMirror {
	if log == nil {
		log = logger.Nop()
	}
	if prefix == "" {
		prefix = "feira:events"
	}
	m := &EventMirror{
		client: client,
		prefix: prefix,
		log:    log,
		queue:  make(chan outgoing, mirrorBuffer),
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

// Channels canales Redis que reciben un evento dirigido a la audiencia.
func (m *EventMirror) Channels(audience entity.Audience) []string {
	var out []string
	for _, member := range []entity.Audience{entity.AudienceBuyers, entity.AudienceSellers} {
		if audience.Includes(member) {
			out = append(out, m.prefix+":"+member.String())
		}
	}
	return out
}

// Publish implementa feira.Broadcaster.
func (m *EventMirror) Publish(audience entity.Audience, event entity.Event) {
	payload, err := json.Marshal(mirrored{
		Event:     event.Name,
		Audience:  audience.String(),
		Data:      event.Payload,
		Published: time.Now().UTC(),
	})
	if err != nil {
		m.log.Error().Err(err).Str("event", event.Name).Msg("serializar evento para redis")
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	for _, channel := range m.Channels(audience) {
		select {
		case m.queue <- outgoing{channel: channel, payload: payload}:
		default:
			m.log.Warn().Str("event", event.Name).Str("channel", channel).Msg("cola de redis llena, evento descartado")
		}
	}
}

// Close vacía la cola pendiente y detiene el goroutine. No cierra el cliente.
func (m *EventMirror) Close() {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		close(m.queue)
		m.mu.Unlock()
		<-m.done
	})
}

func (m *EventMirror) run() {
	defer close(m.done)
	for msg := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := m.client.Publish(ctx, msg.channel, msg.payload).Err(); err != nil {
			m.log.Warn().Err(err).Str("channel", msg.channel).Msg("publicar en redis")
		}
		cancel()
	}
}
