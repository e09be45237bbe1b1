package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-pocketui/pocketui"
	"github.com/valerio/go-pocketui/pocketui/apps/hello"
	"github.com/valerio/go-pocketui/pocketui/apps/workshop"
	"github.com/valerio/go-pocketui/pocketui/backend"
	"github.com/valerio/go-pocketui/pocketui/backend/headless"
	"github.com/valerio/go-pocketui/pocketui/backend/terminal"
	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/config"
	"github.com/valerio/go-pocketui/pocketui/frame"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

func TestNewApp(t *testing.T) {
	app, err := newApp(config.AppHello)
	require.NoError(t, err)
	assert.IsType(t, &hello.App{}, app)

	app, err = newApp(config.AppWorkshop)
	require.NoError(t, err)
	assert.IsType(t, &workshop.App{}, app)

	_, err = newApp("clock")
	assert.Error(t, err)
}

func TestNewSink(t *testing.T) {
	cfg, err := config.Load("", map[string]any{
		config.KeyBackend:        config.BackendHeadless,
		config.KeyHeadlessFrames: 10,
		config.KeyHeadlessScript: "0:A-,5:--",
	})
	require.NoError(t, err)

	sink, err := newSink(cfg)
	require.NoError(t, err)
	assert.IsType(t, &headless.Backend{}, sink)

	cfg.Headless.Script = "bogus"
	_, err = newSink(cfg)
	assert.Error(t, err)

	cfg.Backend = config.BackendTerminal
	sink, err = newSink(cfg)
	require.NoError(t, err)
	assert.IsType(t, &terminal.Backend{}, sink)
}

func TestNewInput_SimulatedUsesSink(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	sim := headless.New(1, headless.SnapshotConfig{})
	in, closeInput, err := newInput(cfg, sim)
	require.NoError(t, err)
	defer closeInput()
	assert.Same(t, sim, in)
}

func TestBCMPin(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"17", 17, false},
		{"GPIO27", 27, false},
		{"gpio5", 5, false},
		{"PA7", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := bcmPin(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVirtualClock(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	tests := []struct {
		name        string
		backend     string
		input       string
		wantVirtual bool
	}{
		{"headless with scripted buttons", config.BackendHeadless, config.InputSim, true},
		{"headless with gpio buttons", config.BackendHeadless, config.InputGPIO, false},
		{"headless with rpio buttons", config.BackendHeadless, config.InputRPIO, false},
		{"terminal with simulated buttons", config.BackendTerminal, config.InputSim, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load("", map[string]any{
				config.KeyBackend:        tt.backend,
				config.KeyInput:          tt.input,
				config.KeyHeadlessFrames: 10,
			})
			require.NoError(t, err)

			sink, err := newSink(cfg)
			require.NoError(t, err)

			clock := virtualClock(cfg, sink)
			if !tt.wantVirtual {
				assert.Nil(t, clock, "hardware and interactive runs measure presses on the system clock")
				return
			}
			require.NotNil(t, clock)

			require.NoError(t, sink.Init(backend.BackendConfig{}))
			start := clock.Now()
			require.NoError(t, sink.Present(frame.New(sink.Size())))
			assert.Equal(t, timing.FrameDuration(timing.DefaultFPS), clock.Now().Sub(start))
		})
	}
}

// wallPress holds button 1 down until a wall-clock deadline
type wallPress struct {
	until time.Time
}

func (w wallPress) Level(id button.ID) (bool, error) {
	return id == button.First && time.Now().Before(w.until), nil
}

type recordingApp struct {
	events []button.Event
}

func (a *recordingApp) Draw(f *frame.Frame) {}

func (a *recordingApp) HandlePress(ev button.Event) {
	a.events = append(a.events, ev)
}

func TestLoopOptions_HardwarePressOnHeadlessIsClassified(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	cfg, err := config.Load("", map[string]any{
		config.KeyBackend:        config.BackendHeadless,
		config.KeyInput:          config.InputGPIO,
		config.KeyHeadlessFrames: 1,
	})
	require.NoError(t, err)
	cfg.Headless.Frames = 0 // run until the press is seen

	sink, err := newSink(cfg)
	require.NoError(t, err)
	require.NoError(t, sink.Init(backend.BackendConfig{}))
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	app := &recordingApp{}
	in := wallPress{until: time.Now().Add(100 * time.Millisecond)}
	loop := pocketui.NewLoop(app, in, sink, loopOptions(cfg, sink)...)

	deadline := time.Now().Add(2 * time.Second)
	for len(app.events) == 0 && time.Now().Before(deadline) {
		require.NoError(t, loop.Step())
	}

	require.Len(t, app.events, 1)
	assert.Equal(t, button.Pressed(button.First, button.Short), app.events[0])
}
