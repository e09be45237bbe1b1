// Package rpio samples the two device buttons on a Raspberry Pi through
// go-rpio's memory mapped GPIO registers.
package rpio

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/valerio/go-pocketui/pocketui/button"
)

// PinConfig holds BCM pin numbers for the two buttons
type PinConfig struct {
	First     int
	Second    int
	ActiveLow bool
	PullUp    bool
}

// Input reads button levels from BCM pins
type Input struct {
	first     rpio.Pin
	second    rpio.Pin
	activeLow bool
	read      func(rpio.Pin) rpio.State
	close     func() error
}

// Open maps the GPIO registers and configures both pins as inputs
func Open(cfg PinConfig) (*Input, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open gpio memory: %w", err)
	}

	in := newInput(cfg, rpio.ReadPin, rpio.Close)
	for _, pin := range []rpio.Pin{in.first, in.second} {
		pin.Input()
		if cfg.PullUp {
			pin.PullUp()
		} else {
			pin.PullDown()
		}
		slog.Info("Configured button pin", "bcm", int(pin), "pull_up", cfg.PullUp, "active_low", cfg.ActiveLow)
	}
	return in, nil
}

func newInput(cfg PinConfig, read func(rpio.Pin) rpio.State, closer func() error) *Input {
	return &Input{
		first:     rpio.Pin(cfg.First),
		second:    rpio.Pin(cfg.Second),
		activeLow: cfg.ActiveLow,
		read:      read,
		close:     closer,
	}
}

// Level implements pocketui.Input
func (in *Input) Level(id button.ID) (bool, error) {
	var pin rpio.Pin
	switch id {
	case button.First:
		pin = in.first
	case button.Second:
		pin = in.second
	default:
		return false, errors.New("only physical buttons can be sampled")
	}

	state := in.read(pin)
	if in.activeLow {
		return state == rpio.Low, nil
	}
	return state == rpio.High, nil
}

// Close unmaps the GPIO registers
func (in *Input) Close() error {
	if in.close == nil {
		return nil
	}
	return in.close()
}
