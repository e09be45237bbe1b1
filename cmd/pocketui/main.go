package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/valerio/go-pocketui/pocketui"
	"github.com/valerio/go-pocketui/pocketui/apps/hello"
	"github.com/valerio/go-pocketui/pocketui/apps/workshop"
	"github.com/valerio/go-pocketui/pocketui/backend"
	"github.com/valerio/go-pocketui/pocketui/backend/gpio"
	"github.com/valerio/go-pocketui/pocketui/backend/headless"
	"github.com/valerio/go-pocketui/pocketui/backend/rpio"
	"github.com/valerio/go-pocketui/pocketui/backend/terminal"
	"github.com/valerio/go-pocketui/pocketui/config"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

// sinkBackend is a backend that can also stand in for the buttons
type sinkBackend interface {
	backend.Backend
	pocketui.Input
}

// flagKeys maps command-line flags to the config keys they override
var flagKeys = map[string]string{
	"backend":           config.KeyBackend,
	"input":             config.KeyInput,
	"app":               config.KeyApp,
	"pin-first":         config.KeyPinFirst,
	"pin-second":        config.KeyPinSecond,
	"active-low":        config.KeyPinActiveLow,
	"pull-up":           config.KeyPinPullUp,
	"frames":            config.KeyHeadlessFrames,
	"width":             config.KeyHeadlessWidth,
	"height":            config.KeyHeadlessHeight,
	"script":            config.KeyHeadlessScript,
	"snapshot-interval": config.KeySnapshotInterval,
	"snapshot-dir":      config.KeySnapshotDir,
	"fps":               config.KeyTerminalFPS,
}

func main() {
	app := cli.NewApp()
	app.Name = "pocketui"
	app.Description = "Two-button terminal UI for small devices"
	app.Usage = "pocketui [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal or headless",
		},
		cli.StringFlag{
			Name:  "input",
			Usage: "Button source: sim, gpio or rpio",
		},
		cli.StringFlag{
			Name:  "app",
			Usage: "Application to run: hello or workshop",
		},
		cli.StringFlag{
			Name:  "pin-first",
			Usage: "Pin of button 1 (periph name for gpio, BCM number for rpio)",
		},
		cli.StringFlag{
			Name:  "pin-second",
			Usage: "Pin of button 2",
		},
		cli.BoolTFlag{
			Name:  "active-low",
			Usage: "Treat a low pin level as pressed",
		},
		cli.BoolTFlag{
			Name:  "pull-up",
			Usage: "Enable the internal pull-up resistor instead of pull-down",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Device width in cells for headless mode",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Device height in cells for headless mode",
		},
		cli.StringFlag{
			Name:  "script",
			Usage: `Scripted button levels for headless mode, e.g. "0:--,10:A-,40:--"`,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.IntFlag{
			Name:  "fps",
			Usage: "Maximum terminal refresh rate",
		},
	}
	app.Action = run

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running pocketui", "error", err)
		os.Exit(1)
	}
}

// overrides collects the flags given explicitly on the command line
func overrides(c *cli.Context) map[string]any {
	values := make(map[string]any)
	for name, key := range flagKeys {
		if !c.IsSet(name) {
			continue
		}
		switch name {
		case "active-low", "pull-up":
			values[key] = c.BoolT(name)
		case "frames", "width", "height", "snapshot-interval", "fps":
			values[key] = c.Int(name)
		default:
			values[key] = c.String(name)
		}
	}
	return values
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"), overrides(c))
	if err != nil {
		return err
	}

	app, err := newApp(cfg.App)
	if err != nil {
		return err
	}

	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err = sink.Init(backend.BackendConfig{
		Title:  "PocketUI",
		Width:  cfg.Headless.Width,
		Height: cfg.Headless.Height,
		Callbacks: backend.BackendCallbacks{
			OnQuit: cancel,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}
	defer func() {
		if err := sink.Cleanup(); err != nil {
			slog.Error("Failed to clean up backend", "error", err)
		}
	}()

	in, closeInput, err := newInput(cfg, sink)
	if err != nil {
		return err
	}
	defer closeInput()

	loop := pocketui.NewLoop(app, in, sink, loopOptions(cfg, sink)...)
	slog.Info("Starting input loop", "app", cfg.App, "backend", cfg.Backend, "input", cfg.Input)

	return loop.Run(ctx)
}

func loopOptions(cfg *config.Config, sink sinkBackend) []pocketui.Option {
	clock := virtualClock(cfg, sink)
	if clock == nil {
		return nil
	}
	return []pocketui.Option{pocketui.WithClock(clock), pocketui.WithDelayer(clock)}
}

// virtualClock drives a scripted headless run on frame time. Hardware pins
// change in wall time, so they keep the system clock even when headless.
func virtualClock(cfg *config.Config, sink sinkBackend) *timing.ManualClock {
	h, ok := sink.(*headless.Backend)
	if !ok || cfg.Input != config.InputSim {
		return nil
	}
	clock := timing.NewManualClock(time.Unix(0, 0))
	h.WithVirtualClock(clock, timing.FrameDuration(timing.DefaultFPS))
	return clock
}

func newApp(name string) (pocketui.App, error) {
	switch name {
	case config.AppHello:
		return hello.New(), nil
	case config.AppWorkshop:
		return workshop.New(), nil
	default:
		return nil, fmt.Errorf("unknown app %q", name)
	}
}

func newSink(cfg *config.Config) (sinkBackend, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		return terminal.New(cfg.Terminal.FPS), nil
	case config.BackendHeadless:
		snapshots, err := headless.CreateSnapshotConfig(cfg.Snapshot.Interval, cfg.Snapshot.Dir, cfg.App)
		if err != nil {
			return nil, err
		}
		script, err := headless.ParseScript(cfg.Headless.Script)
		if err != nil {
			return nil, fmt.Errorf("invalid headless script: %w", err)
		}
		return headless.New(cfg.Headless.Frames, snapshots).WithScript(script), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newInput returns the configured button source. The simulated source is
// the sink itself; hardware sources come with a close function.
func newInput(cfg *config.Config, sim pocketui.Input) (pocketui.Input, func(), error) {
	nop := func() {}

	switch cfg.Input {
	case config.InputSim:
		return sim, nop, nil
	case config.InputGPIO:
		in, err := gpio.Open(gpio.PinConfig{
			First:     cfg.Pins.First,
			Second:    cfg.Pins.Second,
			ActiveLow: cfg.Pins.ActiveLow,
			PullUp:    cfg.Pins.PullUp,
		})
		if err != nil {
			return nil, nop, err
		}
		return in, closer(in.Close), nil
	case config.InputRPIO:
		first, err := bcmPin(cfg.Pins.First)
		if err != nil {
			return nil, nop, err
		}
		second, err := bcmPin(cfg.Pins.Second)
		if err != nil {
			return nil, nop, err
		}
		in, err := rpio.Open(rpio.PinConfig{
			First:     first,
			Second:    second,
			ActiveLow: cfg.Pins.ActiveLow,
			PullUp:    cfg.Pins.PullUp,
		})
		if err != nil {
			return nil, nop, err
		}
		return in, closer(in.Close), nil
	default:
		return nil, nop, fmt.Errorf("unknown input %q", cfg.Input)
	}
}

func closer(fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			slog.Error("Failed to release button pins", "error", err)
		}
	}
}

// bcmPin accepts "17" as well as the periph-style "GPIO17"
func bcmPin(name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "GPIO"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid BCM pin %q", name)
	}
	return n, nil
}
