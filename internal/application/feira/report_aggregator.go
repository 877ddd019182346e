package feira

import "github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"

// ReportAggregator calcula resúmenes de ventas de la feria activa y del histórico.
type ReportAggregator struct {
	sessions *SessionManager
}

// NewReportAggregator construye el agregador.
func NewReportAggregator(sessions *SessionManager) *ReportAggregator {
	return &ReportAggregator{sessions: sessions}
}

// CurrentTotals resume la feria activa; vacío si no hay feria abierta.
func (r *ReportAggregator) CurrentTotals() entity.Totals {
	active, ok := r.sessions.Active()
	if !ok {
		return entity.NewTotals()
	}
	return Fold(active)
}

// HistoricalRollup resume las últimas min(lastN, len(histórico)) ferias cerradas.
// lastN <= 0 devuelve un resumen vacío.
func (r *ReportAggregator) HistoricalRollup(lastN int) entity.Totals {
	return Fold(r.sessions.Recent(lastN)...)
}

// Window resume la feria activa y las últimas lastN cerradas a partir de una sola
// lectura del gestor, de modo que ninguna feria se cuente dos veces.
func (r *ReportAggregator) Window(lastN int) (current, historical entity.Totals) {
	active, recent := r.sessions.Window(lastN)
	current = entity.NewTotals()
	if active != nil {
		current = Fold(*active)
	}
	return current, Fold(recent...)
}

// Fold acumula las ventas de las ferias indicadas.
func Fold(sessions ...entity.Session) entity.Totals {
	totals := entity.NewTotals()
	for _, s := range sessions {
		for _, sale := range s.Sales {
			totals.Add(sale)
		}
	}
	return totals
}
