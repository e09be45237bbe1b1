// Package workshop is a three-tab demo: button 1 cycles tabs, button 2
// performs the action of the current tab.
package workshop

import (
	"fmt"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
)

const (
	TabMain = iota
	TabStats
	TabSettings
	tabCount
)

var tabTitles = []string{"Main", "Stats", "Settings"}

var (
	dim     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	white   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	yellow  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	cyan    = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	green   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	magenta = tcell.StyleDefault.Foreground(tcell.ColorDarkMagenta)
	red     = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// App holds the demo state. Only HandlePress mutates it.
type App struct {
	selectedTab  int
	scrollOffset int
	data         []string
	status       string
	lastButton   *button.Event
	progress     int
	rng          *rand.Rand
}

func New() *App {
	return NewWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand uses rng for the activity sparkline
func NewWithRand(rng *rand.Rand) *App {
	return &App{
		data:   []string{"Item 1", "Item 2", "Item 3", "Item 4", "Item 5"},
		status: "Ready",
		rng:    rng,
	}
}

func (a *App) SelectedTab() int {
	return a.selectedTab
}

func (a *App) Status() string {
	return a.status
}

func (a *App) HandlePress(ev button.Event) {
	a.lastButton = &ev

	switch {
	case ev.IsFirst() && ev.IsShort():
		a.nextTab()
	case ev.IsSecond() && ev.IsShort():
		a.performAction()
	}
}

func (a *App) nextTab() {
	a.selectedTab = (a.selectedTab + 1) % tabCount
	a.status = fmt.Sprintf("Switched to tab %d", a.selectedTab+1)
}

func (a *App) performAction() {
	switch a.selectedTab {
	case TabMain:
		a.scrollOffset++
		a.status = fmt.Sprintf("Scrolled to %d", a.scrollOffset)
	case TabStats:
		a.progress = (a.progress + 5) % 100
		a.status = "Stats refreshed!"
	case TabSettings:
		a.status = "Settings updated!"
	}
}

func block(title string, style tcell.Style) *frame.Block {
	return &frame.Block{
		Title:       frame.Pad(title),
		Border:      frame.BorderRounded,
		BorderStyle: style,
	}
}

func (a *App) Draw(f *frame.Frame) {
	chunks := f.Area().SplitVertical(frame.Length(3), frame.Min(0), frame.Length(3))

	a.drawHeader(f, chunks[0])
	switch a.selectedTab {
	case TabMain:
		a.drawMainTab(f, chunks[1])
	case TabStats:
		a.drawStatsTab(f, chunks[1])
	case TabSettings:
		a.drawSettingsTab(f, chunks[1])
	}
	a.drawFooter(f, chunks[2])
}

func (a *App) drawHeader(f *frame.Frame, area frame.Rect) {
	header := block("Workshop", yellow)
	header.TitleAlign = frame.AlignCenter
	f.Render(&frame.Tabs{
		Titles:         tabTitles,
		Selected:       a.selectedTab,
		Block:          header,
		Style:          white,
		HighlightStyle: yellow.Bold(true),
	}, area)
}

func (a *App) drawMainTab(f *frame.Frame, area frame.Rect) {
	chunks := area.SplitVertical(frame.Percentage(70), frame.Percentage(30))

	items := make([]frame.Line, 0, len(a.data))
	for i, item := range a.data {
		items = append(items, frame.NewLine(
			frame.Styled(fmt.Sprintf("%2d. ", i+1), dim),
			frame.Styled(item, white),
		))
	}
	f.Render(&frame.List{Items: items, Block: block("Data View", cyan)}, chunks[0])

	f.Render(&frame.Paragraph{
		Lines: []frame.Line{
			frame.NewLine(frame.Styled("Total Items: ", dim), frame.Styled(fmt.Sprint(len(a.data)), cyan)),
			frame.NewLine(frame.Styled("Scroll Offset: ", dim), frame.Styled(fmt.Sprint(a.scrollOffset), cyan)),
			frame.Text("BTN2 to scroll down", dim),
		},
		Block: block("Info", cyan),
	}, chunks[1])
}

func (a *App) drawStatsTab(f *frame.Frame, area frame.Rect) {
	chunks := area.SplitVertical(frame.Length(3), frame.Length(10), frame.Min(0))

	f.Render(&frame.Gauge{Percent: a.progress, Block: block("Progress", green), Style: green}, chunks[0])

	samples := make([]uint64, 16)
	for i := range samples {
		samples[i] = a.rng.Uint64N(20)
	}
	f.Render(&frame.Sparkline{Data: samples, Block: block("Activity", yellow), Style: yellow}, chunks[1])

	f.Render(&frame.Paragraph{
		Lines: []frame.Line{
			frame.NewLine(frame.Styled("CPU Usage: ", dim), frame.Styled("45%", green)),
			frame.NewLine(frame.Styled("Memory Free: ", dim), frame.Styled("128 KB", cyan)),
			frame.NewLine(frame.Styled("Uptime: ", dim), frame.Styled("1h 23m", yellow)),
			frame.Text("System running smoothly ✓", green),
		},
		Block: block("System Stats", green),
	}, chunks[2])
}

func (a *App) drawSettingsTab(f *frame.Frame, area frame.Rect) {
	f.Render(&frame.Paragraph{
		Lines: []frame.Line{
			frame.Text("Workshop Project", yellow.Bold(true)),
			frame.Text("Built with:", white),
			frame.Text("  • Go", white),
			frame.Text("  • tcell", white),
			frame.Text("  • periph.io", white),
			frame.Text("\"Anyone can code!\"", cyan.Italic(true)),
			frame.Text("Made at the workshop", red),
		},
		Block: block("About", magenta),
		Align: frame.AlignCenter,
	}, area)
}

func (a *App) drawFooter(f *frame.Frame, area frame.Rect) {
	tag := ""
	if a.lastButton != nil && a.lastButton.IsShort() {
		if a.lastButton.IsFirst() {
			tag = " [BTN1] "
		} else {
			tag = " [BTN2] "
		}
	}

	f.Render(&frame.Paragraph{
		Lines: []frame.Line{frame.NewLine(frame.Styled(tag, cyan), frame.Styled(a.status, green))},
		Block: &frame.Block{Border: frame.BorderRounded, BorderStyle: dim},
		Align: frame.AlignCenter,
	}, area)
}
