package entity

import "time"

// Session representa una feria: un evento de ventas acotado con inicio y cierre.
// ClosedAt es nil mientras la feria está abierta.
type Session struct {
	ID              string
	StartedAt       time.Time
	ClosedAt        *time.Time
	NextScheduledAt *time.Time
	Sales           []Sale
}

// IsOpen indica si la feria aún no fue cerrada.
func (s Session) IsOpen() bool {
	return s.ClosedAt == nil
}

// Clone copia la feria incluyendo el slice de ventas, para entregar snapshots fuera del lock.
func (s Session) Clone() Session {
	out := s
	if s.Sales != nil {
		out.Sales = make([]Sale, len(s.Sales))
		copy(out.Sales, s.Sales)
	}
	if s.ClosedAt != nil {
		t := *s.ClosedAt
		out.ClosedAt = &t
	}
	if s.NextScheduledAt != nil {
		t := *s.NextScheduledAt
		out.NextScheduledAt = &t
	}
	return out
}
