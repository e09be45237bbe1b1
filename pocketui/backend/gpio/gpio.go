// Package gpio samples the two device buttons from GPIO pins using periph.io.
package gpio

import (
	"errors"
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/valerio/go-pocketui/pocketui/button"
)

// PinConfig names the pins wired to the two buttons
type PinConfig struct {
	First     string // e.g. "GPIO35"
	Second    string // e.g. "GPIO0"
	ActiveLow bool   // pressed when the pin reads low
	PullUp    bool   // enable the internal pull-up instead of pull-down
}

// Input reads button levels straight from the pins. No debouncing is done.
type Input struct {
	first     gpio.PinIn
	second    gpio.PinIn
	activeLow bool
}

// Open initializes the host drivers, looks the pins up by name and
// configures them as inputs.
func Open(cfg PinConfig) (*Input, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	first := gpioreg.ByName(cfg.First)
	if first == nil {
		return nil, fmt.Errorf("unknown pin %q for %s", cfg.First, button.First)
	}
	second := gpioreg.ByName(cfg.Second)
	if second == nil {
		return nil, fmt.Errorf("unknown pin %q for %s", cfg.Second, button.Second)
	}

	return New(first, second, cfg)
}

// New configures already resolved pins
func New(first, second gpio.PinIn, cfg PinConfig) (*Input, error) {
	pull := gpio.PullDown
	if cfg.PullUp {
		pull = gpio.PullUp
	}

	for _, p := range []gpio.PinIn{first, second} {
		if err := p.In(pull, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("failed to configure pin %s: %w", p.Name(), err)
		}
		slog.Info("Configured button pin", "pin", p.Name(), "pull", pull.String(), "active_low", cfg.ActiveLow)
	}

	return &Input{first: first, second: second, activeLow: cfg.ActiveLow}, nil
}

// Level implements pocketui.Input
func (in *Input) Level(id button.ID) (bool, error) {
	var pin gpio.PinIn
	switch id {
	case button.First:
		pin = in.first
	case button.Second:
		pin = in.second
	default:
		return false, errors.New("only physical buttons can be sampled")
	}

	level := pin.Read()
	if in.activeLow {
		return level == gpio.Low, nil
	}
	return level == gpio.High, nil
}

// Close releases the pins
func (in *Input) Close() error {
	return errors.Join(in.first.Halt(), in.second.Halt())
}
