package ws

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/logger"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
	maxMessage   = 64 * 1024
)

// Handler conecta las conexiones WebSocket al hub y al despacho.
type Handler struct {
	hub        *Hub
	dispatcher *Dispatcher
	log        *logger.Logger
}

// NewHandler construye el handler.
func NewHandler(hub *Hub, dispatcher *Dispatcher, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{hub: hub, dispatcher: dispatcher, log: log}
}

// RequireUpgrade rechaza con 426 las peticiones que no piden upgrade a WebSocket.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve devuelve el handler Fiber del canal de la audiencia indicada.
func (h *Handler) Serve(audience entity.Audience) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.serveConn(conn, audience)
	})
}

// serveConn: un lector (este goroutine) y un escritor por conexión. El escritor
// termina antes de devolver el control a Fiber, que recicla la conexión.
func (h *Handler) serveConn(conn *websocket.Conn, audience entity.Audience) {
	client := NewClient(audience)
	h.hub.Register(client)
	log := h.log.With().Str("client", client.ID()).Str("audience", audience.String()).Logger()
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("conectado")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(conn, client)
	}()

	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("lectura interrumpida")
			}
			break
		}
		h.dispatcher.Handle(client, raw)
	}

	h.hub.Unregister(client)
	<-writerDone
	log.Info().Msg("desconectado")
}

func (h *Handler) writeLoop(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case msg := <-client.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.hub.Unregister(client)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.hub.Unregister(client)
				return
			}
		case <-client.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
