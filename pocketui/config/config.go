// Package config loads runtime settings from an optional YAML file,
// POCKETUI_* environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix  = "POCKETUI"
	configType = "yaml"

	KeyBackend          = "backend"
	KeyInput            = "input"
	KeyApp              = "app"
	KeyPinFirst         = "pins.first"
	KeyPinSecond        = "pins.second"
	KeyPinActiveLow     = "pins.active_low"
	KeyPinPullUp        = "pins.pull_up"
	KeyHeadlessFrames   = "headless.frames"
	KeyHeadlessWidth    = "headless.width"
	KeyHeadlessHeight   = "headless.height"
	KeyHeadlessScript   = "headless.script"
	KeySnapshotInterval = "snapshot.interval"
	KeySnapshotDir      = "snapshot.dir"
	KeyTerminalFPS      = "terminal.fps"

	BackendTerminal = "terminal"
	BackendHeadless = "headless"

	InputSim  = "sim"
	InputGPIO = "gpio"
	InputRPIO = "rpio"

	AppHello    = "hello"
	AppWorkshop = "workshop"
)

// Pins names the two button lines. For the gpio input they are periph.io
// pin names ("GPIO17"), for rpio they are BCM numbers ("17").
type Pins struct {
	First     string
	Second    string
	ActiveLow bool
	PullUp    bool
}

type Headless struct {
	Frames int
	Width  int
	Height int
	Script string
}

type Snapshot struct {
	Interval int
	Dir      string
}

type Terminal struct {
	FPS int
}

// Config is the resolved configuration used by cmd/pocketui
type Config struct {
	Backend  string
	Input    string
	App      string
	Pins     Pins
	Headless Headless
	Snapshot Snapshot
	Terminal Terminal
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, BackendTerminal)
	v.SetDefault(KeyInput, InputSim)
	v.SetDefault(KeyApp, AppHello)
	v.SetDefault(KeyPinFirst, "GPIO17")
	v.SetDefault(KeyPinSecond, "GPIO27")
	v.SetDefault(KeyPinActiveLow, true)
	v.SetDefault(KeyPinPullUp, true)
	v.SetDefault(KeyHeadlessFrames, 0)
	v.SetDefault(KeyHeadlessWidth, 40)
	v.SetDefault(KeyHeadlessHeight, 13)
	v.SetDefault(KeyHeadlessScript, "")
	v.SetDefault(KeySnapshotInterval, 0)
	v.SetDefault(KeySnapshotDir, "")
	v.SetDefault(KeyTerminalFPS, 30)
}

// Load resolves the configuration. path may be empty, in which case only
// defaults and the environment apply. overrides win over every other source.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg := &Config{
		Backend: v.GetString(KeyBackend),
		Input:   v.GetString(KeyInput),
		App:     v.GetString(KeyApp),
		Pins: Pins{
			First:     v.GetString(KeyPinFirst),
			Second:    v.GetString(KeyPinSecond),
			ActiveLow: v.GetBool(KeyPinActiveLow),
			PullUp:    v.GetBool(KeyPinPullUp),
		},
		Headless: Headless{
			Frames: v.GetInt(KeyHeadlessFrames),
			Width:  v.GetInt(KeyHeadlessWidth),
			Height: v.GetInt(KeyHeadlessHeight),
			Script: v.GetString(KeyHeadlessScript),
		},
		Snapshot: Snapshot{
			Interval: v.GetInt(KeySnapshotInterval),
			Dir:      v.GetString(KeySnapshotDir),
		},
		Terminal: Terminal{
			FPS: v.GetInt(KeyTerminalFPS),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every enumerated setting holds a known value and
// that the selected backend has what it needs to run.
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendTerminal, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	switch c.Input {
	case InputSim, InputGPIO, InputRPIO:
	default:
		errs = append(errs, fmt.Errorf("unknown input %q", c.Input))
	}

	switch c.App {
	case AppHello, AppWorkshop:
	default:
		errs = append(errs, fmt.Errorf("unknown app %q", c.App))
	}

	if c.Input != InputSim && (c.Pins.First == "" || c.Pins.Second == "") {
		errs = append(errs, errors.New("both button pins must be set for hardware input"))
	}

	if c.Backend == BackendHeadless {
		if c.Headless.Frames <= 0 {
			errs = append(errs, errors.New("headless backend requires a positive frame count"))
		}
		if c.Headless.Width <= 0 || c.Headless.Height <= 0 {
			errs = append(errs, fmt.Errorf("invalid headless size %dx%d", c.Headless.Width, c.Headless.Height))
		}
	}

	if c.Snapshot.Interval < 0 {
		errs = append(errs, fmt.Errorf("snapshot interval must not be negative, got %d", c.Snapshot.Interval))
	}
	if c.Terminal.FPS < 0 {
		errs = append(errs, fmt.Errorf("terminal fps must not be negative, got %d", c.Terminal.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
