package rpio

import (
	"testing"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-pocketui/pocketui"
	"github.com/valerio/go-pocketui/pocketui/button"
)

var _ pocketui.Input = (*Input)(nil)

type fakePins map[rpio.Pin]rpio.State

func (f fakePins) read(p rpio.Pin) rpio.State {
	return f[p]
}

func TestInput_Level(t *testing.T) {
	tests := []struct {
		name       string
		activeLow  bool
		state      rpio.State
		wantActive bool
	}{
		{"active low, pin low", true, rpio.Low, true},
		{"active low, pin high", true, rpio.High, false},
		{"active high, pin high", false, rpio.High, true},
		{"active high, pin low", false, rpio.Low, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pins := fakePins{35: tt.state, 0: rpio.High}
			if tt.activeLow {
				pins[0] = rpio.High
			} else {
				pins[0] = rpio.Low
			}
			in := newInput(PinConfig{First: 35, Second: 0, ActiveLow: tt.activeLow}, pins.read, nil)

			down, err := in.Level(button.First)
			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, down)

			down, err = in.Level(button.Second)
			require.NoError(t, err)
			assert.False(t, down, "idle second button")
		})
	}
}

func TestInput_Errors(t *testing.T) {
	closed := false
	in := newInput(PinConfig{}, fakePins{}.read, func() error {
		closed = true
		return nil
	})

	_, err := in.Level(button.Both)
	assert.Error(t, err)

	assert.NoError(t, in.Close())
	assert.True(t, closed)
}
