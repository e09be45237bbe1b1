package pocketui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

// BothHeldDelay is the stall after each BothHeld delivery
const BothHeldDelay = 100 * time.Millisecond

// Loop samples both buttons, dispatches classified events to the app and
// redraws one frame per iteration. It is single-threaded: Step and Run
// must not be called concurrently.
type Loop struct {
	app    App
	input  Input
	sink   Sink
	clock  timing.Clock
	delay  timing.Delayer
	logger *slog.Logger

	first  *button.Classifier
	second *button.Classifier
	frame  *frame.Frame

	iterations uint64
}

type Option func(*Loop)

// WithClock sets the time source used to measure presses
func WithClock(c timing.Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithDelayer sets how the both-held stall is performed
func WithDelayer(d timing.Delayer) Option {
	return func(l *Loop) {
		l.delay = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop wires an app to its input source and display sink.
func NewLoop(app App, input Input, sink Sink, opts ...Option) *Loop {
	l := &Loop{
		app:    app,
		input:  input,
		sink:   sink,
		clock:  timing.SystemClock{},
		delay:  timing.BusyDelayer{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.first = button.NewClassifier(l.clock)
	l.second = button.NewClassifier(l.clock)
	l.frame = frame.New(sink.Size())

	return l
}

// Step runs one iteration: sample, dispatch, draw, present.
func (l *Loop) Step() error {
	firstDown, err := l.input.Level(button.First)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", button.First, err)
	}
	secondDown, err := l.input.Level(button.Second)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", button.Second, err)
	}

	if firstDown && secondDown {
		// Level-triggered: repeats every iteration while both are held,
		// and neither classifier sees these samples.
		l.dispatch(button.BothHeld())
		l.logger.Debug("Both buttons held, stalling", "delay", BothHeldDelay)
		l.delay.Wait(BothHeldDelay)
	} else {
		if kind, ok := l.first.Update(firstDown); ok {
			l.dispatch(button.Pressed(button.First, kind))
		}
		if kind, ok := l.second.Update(secondDown); ok {
			l.dispatch(button.Pressed(button.Second, kind))
		}
	}

	w, h := l.sink.Size()
	if fw, fh := l.frame.Size(); fw != w || fh != h {
		l.frame.Resize(w, h)
	} else {
		l.frame.Clear()
	}
	l.app.Draw(l.frame)

	if err := l.sink.Present(l.frame); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}

	l.iterations++
	return nil
}

// Run steps until ctx is cancelled or a collaborator fails.
// Input and display faults are fatal and returned as is.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("Input loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Input loop stopped", "iterations", l.iterations)
			return nil
		default:
		}

		if err := l.Step(); err != nil {
			l.logger.Error("Input loop failed", "iterations", l.iterations, "error", err)
			return err
		}
	}
}

// Iterations returns the number of completed iterations
func (l *Loop) Iterations() uint64 {
	return l.iterations
}

func (l *Loop) dispatch(ev button.Event) {
	l.logger.Debug("Button event", "event", ev.String())
	l.app.HandlePress(ev)
}

