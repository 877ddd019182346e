package entity

// Audience destinatarios de un broadcast.
type Audience int

const (
	AudienceBuyers  Audience = iota + 1 // clientes
	AudienceSellers                     // vendedor / admin
	AudienceAll                         // ambos
)

// String nombre estable de la audiencia (se usa en logs y en canales de Redis).
func (a Audience) String() string {
	switch a {
	case AudienceBuyers:
		return "cliente"
	case AudienceSellers:
		return "vendedor"
	case AudienceAll:
		return "todos"
	default:
		return "desconocida"
	}
}

// Includes indica si un broadcast a la audiencia a alcanza a los miembros de member.
func (a Audience) Includes(member Audience) bool {
	return a == AudienceAll || a == member
}

// Nombres de eventos emitidos por broadcast.
const (
	EventSaleRecorded   = "sale.recorded"
	EventStockChanged   = "stock.changed"
	EventSessionOpened  = "session.opened"
	EventSessionClosed  = "session.closed"
	EventReportSnapshot = "report.snapshot"
)

// Event cambio de estado ya confirmado, listo para difundir. Payload se serializa a JSON.
type Event struct {
	Name    string
	Payload any
}
