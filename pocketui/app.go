package pocketui

import (
	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
)

// App is implemented by user interfaces driven by the two buttons.
type App interface {
	// Draw renders the current state into the frame. Called once per loop
	// iteration, after any button events of that iteration.
	Draw(f *frame.Frame)

	// HandlePress receives classified button events as they happen.
	HandlePress(ev button.Event)
}

// Input samples the raw level of a physical button.
// Only button.First and button.Second are ever sampled.
type Input interface {
	Level(id button.ID) (bool, error)
}

// Sink flushes a rendered frame to a display
type Sink interface {
	// Size returns the display dimensions in cells.
	Size() (int, int)

	// Present flushes the frame. It may block until the display is ready.
	Present(f *frame.Frame) error
}
