// Package feira contiene el motor de la feria: ciclo de vida de la sesión,
// registro transaccional de ventas, reportes y difusión de cambios a clientes
// y vendedores.
package feira

import "github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/domain/entity"

// Broadcaster difunde un evento ya confirmado a una audiencia.
// Publish no debe bloquear en I/O de red: se invoca con el lock de commit tomado.
type Broadcaster interface {
	Publish(audience entity.Audience, event entity.Event)
}

// Broadcasters reenvía cada evento a todos los destinos, en orden.
type Broadcasters []Broadcaster

// Publish implementa Broadcaster.
func (bs Broadcasters) Publish(audience entity.Audience, event entity.Event) {
	for _, b := range bs {
		if b != nil {
			b.Publish(audience, event)
		}
	}
}

// NopBroadcaster descarta los eventos.
type NopBroadcaster struct{}

// Publish implementa Broadcaster.
func (NopBroadcaster) Publish(entity.Audience, entity.Event) {}
