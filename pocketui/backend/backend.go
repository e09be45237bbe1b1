package backend

import (
	"github.com/valerio/go-pocketui/pocketui/frame"
)

// Backend represents a display the input loop renders into.
// Backends are responsible for:
// - Flushing frames to their specific output (terminal, text snapshots, etc.)
// - Reporting their drawable size in cells
// - Requesting shutdown through Callbacks.OnQuit
// Backends that can also simulate the two buttons implement pocketui.Input.
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Present.
	Init(config BackendConfig) error

	// Size returns the drawable area in cells.
	Size() (int, int)

	// Present flushes a rendered frame. Errors are fatal to the loop.
	Present(f *frame.Frame) error

	// Cleanup resources when shutting down
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title     string
	Width     int // Device screen width in cells; backends may ignore it
	Height    int // Device screen height in cells
	Callbacks BackendCallbacks
}

// BackendCallbacks allows backends to communicate with the application
type BackendCallbacks struct {
	// OnQuit is called when the backend requests shutdown
	// (window close, quit key, frame budget reached).
	OnQuit func()
}

// Quit invokes OnQuit if one is set
func (c BackendCallbacks) Quit() {
	if c.OnQuit != nil {
		c.OnQuit()
	}
}
