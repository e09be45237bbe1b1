package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/valerio/go-pocketui/pocketui/backend"
	"github.com/valerio/go-pocketui/pocketui/backend/terminal/render"
	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
	"github.com/valerio/go-pocketui/pocketui/input"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

const (
	DefaultWidth  = 40
	DefaultHeight = 13

	logCapacity = 100
)

// Backend implements the Backend interface using tcell for terminal rendering.
// It simulates the two device buttons from the keyboard.
type Backend struct {
	screen    tcell.Screen
	running   bool
	logBuffer *render.LogBuffer
	logLevel  *slog.LevelVar
	config    backend.BackendConfig
	limiter   timing.Limiter
	sim       *input.Simulator
	lastEvent string
}

// New creates a terminal backend on the real terminal, flushing at most fps
// frames per second.
func New(fps int) *Backend {
	return &Backend{
		limiter: timing.NewTickerLimiter(fps),
	}
}

// NewWithScreen creates a backend on an existing screen without frame
// pacing. Used with tcell's simulation screen in tests.
func NewWithScreen(screen tcell.Screen, clock timing.Clock) *Backend {
	return &Backend{
		screen:  screen,
		limiter: timing.NewNoOpLimiter(),
		sim:     input.NewSimulator(clock),
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	if config.Title == "" {
		config.Title = "PocketUI"
	}
	t.config = config
	if t.sim == nil {
		t.sim = input.NewSimulator(timing.SystemClock{})
	}

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.running = true

	// Capture logs into the side pane; the terminal is ours now
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.logLevel = &slog.LevelVar{}
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("Terminal backend initialized", "device", fmt.Sprintf("%dx%d", config.Width, config.Height))
	return nil
}

// Size returns the simulated device screen size, not the terminal size
func (t *Backend) Size() (int, int) {
	return t.config.Width, t.config.Height
}

// Level implements pocketui.Input from simulated key holds
func (t *Backend) Level(id button.ID) (bool, error) {
	return t.sim.Level(id)
}

// Present polls pending key events, then draws the device frame and the log pane.
func (t *Backend) Present(f *frame.Frame) error {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if !t.running {
		return nil
	}

	t.limiter.WaitForNextFrame()
	t.render(f)
	t.screen.Show()
	return nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if stopper, ok := t.limiter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyEscape: "Escape",
	tcell.KeyCtrlC:  "q",
}

func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "Space"
		}
		return string(ev.Rune())
	}
	return tcellKeyNameMap[ev.Key()]
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	name := keyName(ev)

	switch name {
	case "+", "=":
		t.changeLogLevel(-4)
		return
	case "-", "_":
		t.changeLogLevel(4)
		return
	}

	binding, ok := input.GetDefaultMapping(name)
	if !ok {
		return
	}

	if binding.Quit {
		slog.Info("Quit requested", "key", name)
		t.running = false
		t.config.Callbacks.Quit()
		return
	}

	t.lastEvent = fmt.Sprintf("%s held %s", binding.Button, binding.Hold)
	slog.Debug("Key event", "key", name, "button", binding.Button.String(), "hold", binding.Hold)
	t.sim.Trigger(binding)
}

// changeLogLevel moves the log pane filter by delta (slog levels are 4 apart)
func (t *Backend) changeLogLevel(delta int) {
	oldLevel := t.logLevel.Level()
	newLevel := oldLevel + slog.Level(delta)
	if newLevel < slog.LevelDebug || newLevel > slog.LevelError {
		return
	}
	t.logLevel.Set(newLevel)
	slog.Info("Log filter changed", "from", oldLevel, "to", newLevel)
}

func (t *Backend) minTermSize() (int, int) {
	return t.config.Width + 2, t.config.Height + 4
}

func (t *Backend) render(f *frame.Frame) {
	termWidth, termHeight := t.screen.Size()
	minWidth, minHeight := t.minTermSize()
	t.screen.Clear()

	if termWidth < minWidth || termHeight < minHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minWidth, minHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	dividerX := t.config.Width + 1
	t.drawDevice(f, dividerX)
	t.drawLogs(dividerX+2, 1, termWidth-dividerX-2, termHeight-2)
	t.drawHelp(termWidth, termHeight)
}

// drawDevice draws the bordered device screen with the frame inside
func (t *Backend) drawDevice(f *frame.Frame, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bottom := t.config.Height + 1

	for x := 1; x < dividerX; x++ {
		t.screen.SetContent(x, 0, '─', nil, borderStyle)
		t.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		t.screen.SetContent(0, y, '│', nil, borderStyle)
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}
	t.screen.SetContent(0, 0, '┌', nil, borderStyle)
	t.screen.SetContent(dividerX, 0, '┐', nil, borderStyle)
	t.screen.SetContent(0, bottom, '└', nil, borderStyle)
	t.screen.SetContent(dividerX, bottom, '┘', nil, borderStyle)
	t.drawText(1, 0, dividerX-1, frame.Pad(t.config.Title), titleStyle)

	w, h := f.Size()
	for y := 0; y < h && y < t.config.Height; y++ {
		for x := 0; x < w && x < t.config.Width; x++ {
			cell, _ := f.Cell(x, y)
			if cell.Rune == 0 {
				continue
			}
			t.screen.SetContent(1+x, 1+y, cell.Rune, nil, cell.Style)
		}
	}

	if t.lastEvent != "" {
		t.drawText(1, bottom+1, dividerX, "keys: "+t.lastEvent, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}

func (t *Backend) drawLogs(startX, startY, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	title := fmt.Sprintf(" Logs [%s] (-/+ filter) ", render.LevelTag(t.logLevel.Level()))
	t.drawText(startX, 0, width, title, titleStyle)

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(height, t.logLevel.Level()) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		t.drawText(startX, startY+i, width, fitText(render.FormatLogEntry(entry), width), style)
	}
}

// fitText truncates text to width terminal columns, marking the cut with "..."
func fitText(text string, width int) string {
	if width <= 3 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "...")
}

func (t *Backend) drawHelp(termWidth, termHeight int) {
	helpText := " Button 1: a/A  Button 2: d/D  Both: s  Discard: z/x | Logs: +/- filter | q=quit "
	t.drawText(0, termHeight-1, termWidth, helpText, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			break
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
