package feira

import (
	"context"
	"sync"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/repository"
)

// DefaultHistoryWindow cantidad de ferias cerradas que entran en los reportes históricos.
const DefaultHistoryWindow = 3

// Service es el contexto explícito de la feria: dueño del inventario, del gestor de
// sesiones (con su histórico), del procesador de ventas y de los reportes.
// Los handlers reciben este objeto; no hay estado global.
//
// mu serializa todas las operaciones que mutan estado junto con sus broadcasts,
// así los eventos de un mismo producto se observan en el orden de commit.
// Las consultas no toman mu; leen snapshots con los locks de lectura de cada componente.
type Service struct {
	mu            sync.Mutex
	inventory     repository.InventoryStore
	sessions      *SessionManager
	sales         *TransactionProcessor
	reports       *ReportAggregator
	events        Broadcaster
	historyWindow int
}

// NewService construye la feria sobre el inventario dado. events puede ser nil.
func NewService(inventory repository.InventoryStore, events Broadcaster, historyWindow int) *Service {
	if events == nil {
		events = NopBroadcaster{}
	}
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	sessions := NewSessionManager()
	return &Service{
		inventory:     inventory,
		sessions:      sessions,
		sales:         NewTransactionProcessor(inventory, sessions, events),
		reports:       NewReportAggregator(sessions),
		events:        events,
		historyWindow: historyWindow,
	}
}

// HistoryWindow ventana fija de ferias para los reportes históricos.
func (s *Service) HistoryWindow() int { return s.historyWindow }

// ── Comprador ────────────────────────────────────────────────────────────────

// Price devuelve el precio del producto o domain.ErrNotFound.
func (s *Service) Price(productID string) (dto.PriceResult, error) {
	p, err := s.inventory.Get(productID)
	if err != nil {
		return dto.PriceResult{ProductID: productID}, err
	}
	price := priceNumber(p.Price)
	return dto.PriceResult{ProductID: productID, Price: &price}, nil
}

// OutOfStock lista los productos sin stock.
func (s *Service) OutOfStock() dto.OutOfStockResult {
	return dto.OutOfStockResult{Products: toProductResponses(s.inventory.OutOfStock())}
}

// SessionState indica si hay feria abierta y la devuelve.
func (s *Service) SessionState() dto.SessionState {
	active, ok := s.sessions.Active()
	if !ok {
		return dto.SessionState{Open: false}
	}
	resp := toSessionResponse(active)
	return dto.SessionState{Open: true, Session: &resp}
}

// SubmitSale registra una venta; los broadcasts los emite el TransactionProcessor.
func (s *Service) SubmitSale(ctx context.Context, in dto.SaleSubmitRequest) (dto.SaleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, err := s.sales.RecordSale(ctx, SaleInput{
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		CustomerName: in.CustomerName,
		VendorName:   in.VendorName,
	})
	if err != nil {
		return dto.SaleResponse{}, err
	}
	return toSaleResponse(sale), nil
}

// ── Vendedor ─────────────────────────────────────────────────────────────────

// OpenSession abre la feria. Solo difunde session.opened cuando la feria es nueva;
// si ya estaba abierta responde AlreadyOpen=true sin cambiar estado.
func (s *Service) OpenSession(ctx context.Context, in dto.SessionOpenRequest) (dto.SessionOpened, error) {
	if err := ctx.Err(); err != nil {
		return dto.SessionOpened{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, created := s.sessions.Open(in.NextScheduledAt)
	if created {
		s.events.Publish(entity.AudienceAll, sessionOpenedEvent(session))
	}
	return dto.SessionOpened{Session: toSessionResponse(session), AlreadyOpen: !created}, nil
}

// CloseSession cierra la feria activa y difunde session.closed.
func (s *Service) CloseSession(ctx context.Context) (dto.SessionResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.SessionResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sealed, err := s.sessions.Close()
	if err != nil {
		return dto.SessionResponse{}, err
	}
	s.events.Publish(entity.AudienceAll, sessionClosedEvent(sealed))
	return toSessionResponse(sealed), nil
}

// OverrideStock reemplaza el stock de un producto (ajuste del admin) y difunde stock.changed.
func (s *Service) OverrideStock(ctx context.Context, in dto.StockOverrideRequest) (dto.StockOverrideResult, error) {
	if err := ctx.Err(); err != nil {
		return dto.StockOverrideResult{}, err
	}
	if in.NewStock == nil {
		return dto.StockOverrideResult{ProductID: in.ProductID}, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.inventory.SetStock(in.ProductID, *in.NewStock)
	if err != nil {
		return dto.StockOverrideResult{ProductID: in.ProductID}, err
	}
	s.events.Publish(entity.AudienceAll, stockChangedEvent(p))
	return dto.StockOverrideResult{OK: true, ProductID: p.ID, Stock: p.Stock}, nil
}

// ReportTotals unidades vendidas en la feria actual y en la ventana histórica.
func (s *Service) ReportTotals() dto.ReportTotalsResult {
	current, historical := s.reports.Window(s.historyWindow)
	return dto.ReportTotalsResult{
		Current:         current.TotalItems,
		HistoricalTotal: historical.TotalItems,
		Window:          s.historyWindow,
	}
}

// ReportByBrand unidades por marca (actual e histórico).
func (s *Service) ReportByBrand() dto.ReportBreakdownResult {
	current, historical := s.reports.Window(s.historyWindow)
	return dto.ReportBreakdownResult{Current: current.ByBrand, Historical: historical.ByBrand}
}

// ReportByModel unidades por modelo (actual e histórico).
func (s *Service) ReportByModel() dto.ReportBreakdownResult {
	current, historical := s.reports.Window(s.historyWindow)
	return dto.ReportBreakdownResult{Current: current.ByModel, Historical: historical.ByModel}
}

// ReportSnapshot resumen completo para el envío periódico al vendedor.
func (s *Service) ReportSnapshot() dto.ReportSnapshot {
	current, historical := s.reports.Window(s.historyWindow)
	return dto.ReportSnapshot{
		Current:    toTotalsResponse(current),
		Historical: toTotalsResponse(historical),
		Window:     s.historyWindow,
	}
}

// PublishReportSnapshot difunde report.snapshot solo a la audiencia de vendedores.
func (s *Service) PublishReportSnapshot() dto.ReportSnapshot {
	snap := s.ReportSnapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.Publish(entity.AudienceSellers, entity.Event{Name: entity.EventReportSnapshot, Payload: snap})
	return snap
}

// ── Inspección (solo lectura) ────────────────────────────────────────────────

// Catalog lista el catálogo completo.
func (s *Service) Catalog() []dto.ProductResponse {
	return toProductResponses(s.inventory.List())
}

// Product obtiene un producto del catálogo.
func (s *Service) Product(id string) (dto.ProductResponse, error) {
	p, err := s.inventory.Get(id)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return toProductResponse(p), nil
}

// Snapshot devuelve la feria activa y el histórico.
func (s *Service) Snapshot() dto.FeiraSnapshot {
	active, ledger := s.sessions.State()
	out := dto.FeiraSnapshot{History: make([]dto.SessionResponse, 0, len(ledger))}
	if active != nil {
		resp := toSessionResponse(*active)
		out.Active = &resp
	}
	for _, session := range ledger {
		out.History = append(out.History, toSessionResponse(session))
	}
	return out
}
