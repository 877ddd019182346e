package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/feira"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/logger"
)

// requestTimeout tiempo máximo para atender un mensaje entrante.
const requestTimeout = 5 * time.Second

// route atiende un evento entrante. Devuelve la respuesta para el solicitante
// (nil si el resultado viaja solo por broadcast) o un error de dominio.
type route func(ctx context.Context, env Envelope) (*Message, error)

// Dispatcher traduce mensajes de los canales a operaciones de feira.Service.
// Los errores se devuelven solo al solicitante; nunca se difunden.
type Dispatcher struct {
	svc    *feira.Service
	hub    *Hub
	log    *logger.Logger
	buyer  map[string]route
	seller map[string]route
}

// NewDispatcher construye el despacho con las tablas de rutas de cada audiencia.
func NewDispatcher(svc *feira.Service, hub *Hub, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{svc: svc, hub: hub, log: log}
	d.buyer = map[string]route{
		EventPriceQuery:      d.priceQuery,
		EventOutOfStockQuery: d.outOfStockQuery,
		EventSessionQuery:    d.sessionQuery,
		EventSaleSubmit:      d.saleSubmit,
	}
	d.seller = map[string]route{
		EventPriceQuery:      d.priceQuery,
		EventOutOfStockQuery: d.outOfStockQuery,
		EventSessionQuery:    d.sessionQuery,
		EventSessionOpen:     d.sessionOpen,
		EventSessionClose:    d.sessionClose,
		EventStockOverride:   d.stockOverride,
		EventReportTotals:    d.reportTotals,
		EventReportByBrand:   d.reportByBrand,
		EventReportByModel:   d.reportByModel,
	}
	return d
}

// Handle procesa un mensaje crudo recibido de c. Un panic en una ruta se registra
// y se responde como error interno; la conexión sigue abierta.
func (d *Dispatcher) Handle(c *Client, raw []byte) {
	var env Envelope
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("event", env.Event).Str("client", c.ID()).Msg("panic atendiendo mensaje")
			d.reply(c, errorMessage(env, "INTERNAL", "error interno"))
		}
	}()

	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		d.reply(c, errorMessage(env, "INVALID_ARGUMENT", "mensaje inválido"))
		return
	}

	routes := d.buyer
	if c.Audience() == entity.AudienceSellers {
		routes = d.seller
	}
	handler, ok := routes[env.Event]
	if !ok {
		d.reply(c, errorMessage(env, "INVALID_ARGUMENT", "evento desconocido: "+env.Event))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	out, err := handler(ctx, env)
	if err != nil {
		code, msg := errorCode(err)
		d.log.Debug().Err(err).Str("event", env.Event).Str("client", c.ID()).Msg("solicitud rechazada")
		d.reply(c, errorMessage(env, code, msg))
		return
	}
	if out != nil {
		out.RequestID = env.RequestID
		d.reply(c, *out)
	}
}

func (d *Dispatcher) reply(c *Client, msg Message) {
	if err := d.hub.Send(c, msg); err != nil {
		d.log.Debug().Err(err).Str("event", msg.Event).Str("client", c.ID()).Msg("respuesta descartada")
	}
}

// decode lee env.Data en v; un cuerpo ausente deja v en su valor cero.
func decode(env Envelope, v any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// ── Comprador ────────────────────────────────────────────────────────────────

func (d *Dispatcher) priceQuery(_ context.Context, env Envelope) (*Message, error) {
	var in dto.PriceQuery
	if err := decode(env, &in); err != nil {
		return nil, err
	}
	res, err := d.svc.Price(in.ProductID)
	if errors.Is(err, domain.ErrNotFound) {
		res.Error = "NOT_FOUND"
	} else if err != nil {
		return nil, err
	}
	return &Message{Event: EventPriceResult, Data: res}, nil
}

func (d *Dispatcher) outOfStockQuery(context.Context, Envelope) (*Message, error) {
	return &Message{Event: EventOutOfStockResult, Data: d.svc.OutOfStock()}, nil
}

func (d *Dispatcher) sessionQuery(context.Context, Envelope) (*Message, error) {
	return &Message{Event: EventSessionResult, Data: d.svc.SessionState()}, nil
}

// saleSubmit: en caso de éxito el resultado llega a todos por sale.recorded y stock.changed.
func (d *Dispatcher) saleSubmit(ctx context.Context, env Envelope) (*Message, error) {
	var in dto.SaleSubmitRequest
	if err := decode(env, &in); err != nil {
		return nil, err
	}
	if _, err := d.svc.SubmitSale(ctx, in); err != nil {
		return nil, err
	}
	return nil, nil
}

// ── Vendedor ─────────────────────────────────────────────────────────────────

// sessionOpen: una feria nueva se anuncia por broadcast (incluye al solicitante);
// si ya estaba abierta solo responde al solicitante con alreadyOpen=true.
func (d *Dispatcher) sessionOpen(ctx context.Context, env Envelope) (*Message, error) {
	var in dto.SessionOpenRequest
	if err := decode(env, &in); err != nil {
		return nil, err
	}
	res, err := d.svc.OpenSession(ctx, in)
	if err != nil {
		return nil, err
	}
	if !res.AlreadyOpen {
		d.log.Info().Str("session", res.Session.ID).Msg("feria abierta")
		return nil, nil
	}
	return &Message{Event: EventSessionOpenedReply, Data: res}, nil
}

func (d *Dispatcher) sessionClose(ctx context.Context, _ Envelope) (*Message, error) {
	sealed, err := d.svc.CloseSession(ctx)
	if err != nil {
		return nil, err
	}
	d.log.Info().Str("session", sealed.ID).Int("sales", len(sealed.Sales)).Msg("feria cerrada")
	return nil, nil
}

func (d *Dispatcher) stockOverride(ctx context.Context, env Envelope) (*Message, error) {
	var in dto.StockOverrideRequest
	if err := decode(env, &in); err != nil {
		return nil, err
	}
	res, err := d.svc.OverrideStock(ctx, in)
	if err != nil {
		return nil, err
	}
	return &Message{Event: EventStockOverrideResult, Data: res}, nil
}

func (d *Dispatcher) reportTotals(context.Context, Envelope) (*Message, error) {
	return &Message{Event: EventReportTotalsResult, Data: d.svc.ReportTotals()}, nil
}

func (d *Dispatcher) reportByBrand(context.Context, Envelope) (*Message, error) {
	return &Message{Event: EventReportByBrandResult, Data: d.svc.ReportByBrand()}, nil
}

func (d *Dispatcher) reportByModel(context.Context, Envelope) (*Message, error) {
	return &Message{Event: EventReportByModelResult, Data: d.svc.ReportByModel()}, nil
}

// ── Errores ──────────────────────────────────────────────────────────────────

func errorMessage(env Envelope, code, message string) Message {
	return Message{
		Event:     EventError,
		RequestID: env.RequestID,
		Data:      dto.ErrorResponse{Code: code, Message: message, Request: env.Event},
	}
}

// errorCode traduce errores de dominio a códigos del protocolo.
func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrNoActiveSession):
		return "NO_ACTIVE_SESSION", "ninguna feria activa"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND", "producto no encontrado"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK", "stock insuficiente"
	case errors.Is(err, domain.ErrInvalidInput):
		return "INVALID_ARGUMENT", "datos inválidos"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "TIMEOUT", "la solicitud expiró"
	default:
		return "INTERNAL", err.Error()
	}
}
