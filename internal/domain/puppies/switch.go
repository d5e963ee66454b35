package puppies

import "sync/atomic"

// Switch es un flag que el caller inyecta en el Service para simular fallas.
// Cada Service (y cada test) tiene el suyo; no hay estado global.
type Switch struct {
	on atomic.Bool
}

func NewSwitch(on bool) *Switch {
	s := &Switch{}
	s.on.Store(on)
	return s
}

// Enabled tolera receiver nil (switch no configurado = apagado).
func (s *Switch) Enabled() bool {
	if s == nil {
		return false
	}
	return s.on.Load()
}

func (s *Switch) Set(on bool) {
	if s == nil {
		return
	}
	s.on.Store(on)
}
