package feira

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"
)

// SessionManager máquina de estados Cerrada/Abierta de la feria y libro histórico
// de ferias cerradas (append-only, en orden de cierre).
type SessionManager struct {
	mu     sync.RWMutex
	active *entity.Session
	ledger []entity.Session
	now    func() time.Time
}

// NewSessionManager construye el gestor en estado Cerrada.
func NewSessionManager() *SessionManager {
	return &SessionManager{now: time.Now}
}

// Open abre una feria nueva. Si ya hay una abierta la devuelve sin cambios y created=false.
func (m *SessionManager) Open(nextScheduledAt *time.Time) (session entity.Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return m.active.Clone(), false
	}
	s := &entity.Session{
		ID:        uuid.New().String(),
		StartedAt: m.now(),
		Sales:     []entity.Sale{},
	}
	if nextScheduledAt != nil {
		t := *nextScheduledAt
		s.NextScheduledAt = &t
	}
	m.active = s
	return s.Clone(), true
}

// Close sella la feria activa (ClosedAt) y la agrega al histórico.
// Es el único camino por el que una feria entra al histórico.
func (m *SessionManager) Close() (entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return entity.Session{}, domain.ErrNoActiveSession
	}
	closedAt := m.now()
	m.active.ClosedAt = &closedAt
	sealed := m.active.Clone()
	m.ledger = append(m.ledger, sealed)
	m.active = nil
	return sealed.Clone(), nil
}

// Active devuelve una copia de la feria abierta, si existe.
func (m *SessionManager) Active() (entity.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return entity.Session{}, false
	}
	return m.active.Clone(), true
}

// WithActive ejecuta fn con la feria abierta bajo el lock de escritura, de modo que
// no pueda cerrarse mientras se registra una venta.
func (m *SessionManager) WithActive(fn func(s *entity.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return domain.ErrNoActiveSession
	}
	return fn(m.active)
}

// State devuelve la feria activa (nil si no hay) y el histórico, leídos bajo el mismo lock.
func (m *SessionManager) State() (*entity.Session, []entity.Session) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active *entity.Session
	if m.active != nil {
		c := m.active.Clone()
		active = &c
	}
	return active, cloneSessions(m.ledger)
}

// Recent devuelve las últimas n ferias cerradas, de la más antigua a la más reciente.
func (m *SessionManager) Recent(n int) []entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recent(n)
}

// Window devuelve la feria activa (nil si no hay) y las últimas n cerradas, leídas
// bajo el mismo lock: una feria nunca aparece a la vez como activa y como cerrada.
func (m *SessionManager) Window(n int) (*entity.Session, []entity.Session) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active *entity.Session
	if m.active != nil {
		c := m.active.Clone()
		active = &c
	}
	return active, m.recent(n)
}

// recent requiere m.mu tomado.
func (m *SessionManager) recent(n int) []entity.Session {
	if n <= 0 {
		return []entity.Session{}
	}
	start := len(m.ledger) - n
	if start < 0 {
		start = 0
	}
	return cloneSessions(m.ledger[start:])
}

func cloneSessions(in []entity.Session) []entity.Session {
	out := make([]entity.Session, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}
