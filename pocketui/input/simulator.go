package input

import (
	"time"

	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

// Simulator turns discrete key events into button levels. Terminals never
// report key releases, so each key event holds its button down until a
// deadline; key repeat keeps pushing that deadline forward.
type Simulator struct {
	clock     timing.Clock
	heldUntil map[button.ID]time.Time
}

func NewSimulator(clock timing.Clock) *Simulator {
	if clock == nil {
		clock = timing.SystemClock{}
	}
	return &Simulator{
		clock:     clock,
		heldUntil: make(map[button.ID]time.Time),
	}
}

// Trigger applies a key binding at the current time.
// Quit bindings are ignored here; callers handle them.
func (s *Simulator) Trigger(b Binding) {
	if b.Quit {
		return
	}
	deadline := s.clock.Now().Add(b.Hold)

	ids := []button.ID{b.Button}
	if b.Button == button.Both {
		ids = []button.ID{button.First, button.Second}
	}
	for _, id := range ids {
		if deadline.After(s.heldUntil[id]) {
			s.heldUntil[id] = deadline
		}
	}
}

// Level implements pocketui.Input
func (s *Simulator) Level(id button.ID) (bool, error) {
	until, ok := s.heldUntil[id]
	if !ok {
		return false, nil
	}
	if s.clock.Now().Before(until) {
		return true, nil
	}
	delete(s.heldUntil, id)
	return false, nil
}

// Release drops every simulated hold immediately
func (s *Simulator) Release() {
	clear(s.heldUntil)
}
