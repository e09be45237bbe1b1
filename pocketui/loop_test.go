package pocketui_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-pocketui/pocketui"
	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

// recordingApp logs every callback in order so tests can check that events
// precede the draw of the same iteration
type recordingApp struct {
	calls  []string
	events []button.Event
}

func (a *recordingApp) Draw(f *frame.Frame) {
	a.calls = append(a.calls, "draw")
	f.SetString(0, 0, "drawn", tcell.StyleDefault, 5)
}

func (a *recordingApp) HandlePress(ev button.Event) {
	a.calls = append(a.calls, ev.String())
	a.events = append(a.events, ev)
}

// levelInput returns whatever levels were last set
type levelInput struct {
	first, second bool
	err           error
	reads         []button.ID
}

func (in *levelInput) Level(id button.ID) (bool, error) {
	in.reads = append(in.reads, id)
	if in.err != nil {
		return false, in.err
	}
	if id == button.First {
		return in.first, nil
	}
	return in.second, nil
}

type recordingSink struct {
	width, height int
	presented     int
	lastText      []string
	err           error
}

func (s *recordingSink) Size() (int, int) {
	return s.width, s.height
}

func (s *recordingSink) Present(f *frame.Frame) error {
	if s.err != nil {
		return s.err
	}
	s.presented++
	s.lastText = f.Lines()
	return nil
}

type fixture struct {
	app   *recordingApp
	input *levelInput
	sink  *recordingSink
	clock *timing.ManualClock
	loop  *pocketui.Loop
}

func newFixture() *fixture {
	fx := &fixture{
		app:   &recordingApp{},
		input: &levelInput{},
		sink:  &recordingSink{width: 10, height: 2},
		clock: timing.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	fx.loop = pocketui.NewLoop(fx.app, fx.input, fx.sink,
		pocketui.WithClock(fx.clock),
		pocketui.WithDelayer(fx.clock))
	return fx
}

// step sets the levels, runs one iteration and then lets time pass
func (fx *fixture) step(t *testing.T, first, second bool, after time.Duration) {
	t.Helper()
	fx.input.first, fx.input.second = first, second
	require.NoError(t, fx.loop.Step())
	fx.clock.Advance(after)
}

func TestLoop_SinglePressScenarios(t *testing.T) {
	tests := []struct {
		name   string
		hold   time.Duration
		expect []button.Event
	}{
		{"released at 300ms", 300 * time.Millisecond, []button.Event{button.Pressed(button.First, button.Short)}},
		{"released at 1200ms", 1200 * time.Millisecond, []button.Event{button.Pressed(button.First, button.Long)}},
		{"released at 2500ms", 2500 * time.Millisecond, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			fx.step(t, true, false, tt.hold)
			fx.step(t, false, false, 0)

			assert.Equal(t, tt.expect, fx.app.events)
			assert.Equal(t, 2, fx.sink.presented)
		})
	}
}

func TestLoop_HoldAcrossIterations(t *testing.T) {
	fx := newFixture()

	for i := 0; i < 6; i++ {
		fx.step(t, false, true, 100*time.Millisecond)
	}
	assert.Empty(t, fx.app.events, "no events while held")

	fx.step(t, false, false, 0)
	assert.Equal(t, []button.Event{button.Pressed(button.Second, button.Long)}, fx.app.events)
}

func TestLoop_BothHeldIsLevelTriggered(t *testing.T) {
	fx := newFixture()
	start := fx.clock.Now()

	for i := 0; i < 3; i++ {
		fx.step(t, true, true, 0)
	}

	assert.Equal(t, []button.Event{button.BothHeld(), button.BothHeld(), button.BothHeld()}, fx.app.events)
	// Each BothHeld stalls the loop for the fixed delay
	assert.Equal(t, 3*pocketui.BothHeldDelay, fx.clock.Now().Sub(start))
	assert.Equal(t, 3, fx.sink.presented)

	// Releasing both after a pure Both span emits nothing: the classifiers
	// never saw the buttons go down
	fx.step(t, false, false, 0)
	assert.Len(t, fx.app.events, 3)
}

func TestLoop_BothBypassesClassifiers(t *testing.T) {
	fx := newFixture()

	// First goes down alone, then both are held for two iterations
	fx.step(t, true, false, 100*time.Millisecond)
	fx.step(t, true, true, 0)
	fx.step(t, true, true, 0)

	// Second released; First still down and still timed from its own start
	fx.step(t, true, false, 0)
	fx.step(t, false, false, 0)

	assert.Equal(t, []button.Event{
		button.BothHeld(),
		button.BothHeld(),
		button.Pressed(button.First, button.Short),
	}, fx.app.events)
}

func TestLoop_EventsPrecedeDraw(t *testing.T) {
	fx := newFixture()

	fx.step(t, true, true, 0)
	fx.step(t, true, false, 0)
	fx.step(t, false, false, 0)

	assert.Equal(t, []string{
		"Both Buttons", "draw",
		"draw",
		"Button 1 (Short Press)", "draw",
	}, fx.app.calls)
}

func TestLoop_HandoffBetweenButtons(t *testing.T) {
	fx := newFixture()

	// First released on the same sample that Second goes down
	fx.step(t, true, false, 100*time.Millisecond)
	fx.step(t, false, true, 600*time.Millisecond)
	fx.step(t, false, false, 0)

	assert.Equal(t, []button.Event{
		button.Pressed(button.First, button.Short),
		button.Pressed(button.Second, button.Long),
	}, fx.app.events)
}

func TestLoop_SamplesFirstThenSecond(t *testing.T) {
	fx := newFixture()
	fx.step(t, false, false, 0)
	assert.Equal(t, []button.ID{button.First, button.Second}, fx.input.reads)
}

func TestLoop_FramePresented(t *testing.T) {
	fx := newFixture()
	fx.step(t, false, false, 0)
	assert.Equal(t, []string{"drawn     ", "          "}, fx.sink.lastText)

	// Sink size changes are picked up on the next iteration
	fx.sink.width, fx.sink.height = 6, 1
	fx.step(t, false, false, 0)
	assert.Equal(t, []string{"drawn "}, fx.sink.lastText)
	assert.Equal(t, uint64(2), fx.loop.Iterations())
}

func TestLoop_InputErrorIsFatal(t *testing.T) {
	fx := newFixture()
	fx.input.err = errors.New("pin read failed")

	err := fx.loop.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fx.input.err)
	assert.Contains(t, err.Error(), "Button 1")
	assert.Equal(t, 0, fx.sink.presented)
	assert.Empty(t, fx.app.calls)
}

func TestLoop_SinkErrorIsFatal(t *testing.T) {
	fx := newFixture()
	fx.sink.err = errors.New("display gone")

	err := fx.loop.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fx.sink.err)
	assert.Equal(t, uint64(0), fx.loop.Iterations())
}

// cancellingSink stops the loop after a fixed number of frames
type cancellingSink struct {
	recordingSink
	limit  int
	cancel context.CancelFunc
}

func (s *cancellingSink) Present(f *frame.Frame) error {
	if err := s.recordingSink.Present(f); err != nil {
		return err
	}
	if s.presented >= s.limit {
		s.cancel()
	}
	return nil
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := timing.NewManualClock(time.Unix(0, 0))
	sink := &cancellingSink{recordingSink: recordingSink{width: 4, height: 1}, limit: 5, cancel: cancel}
	loop := pocketui.NewLoop(&recordingApp{}, &levelInput{}, sink,
		pocketui.WithClock(clock), pocketui.WithDelayer(clock))

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, 5, sink.presented)
	assert.Equal(t, uint64(5), loop.Iterations())
}
