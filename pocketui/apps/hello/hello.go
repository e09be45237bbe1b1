// Package hello is the smallest useful app: it shows the last button event.
package hello

import (
	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
)

var (
	dim    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	yellow = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

type App struct {
	lastPressed *button.Event
}

func New() *App {
	return &App{}
}

func (a *App) Draw(f *frame.Frame) {
	pressed := frame.Text("Press a button...", dim)
	if a.lastPressed != nil {
		pressed = frame.NewLine(
			frame.Styled("You pressed: ", dim),
			frame.Styled(a.lastPressed.String(), yellow),
		)
	}

	f.Render(&frame.Paragraph{
		Lines: []frame.Line{
			frame.Text("Terminal UIs on embedded devices!", dim),
			pressed,
		},
		Block: &frame.Block{
			Title:       "PocketUI",
			Border:      frame.BorderPlain,
			BorderStyle: yellow,
		},
	}, f.Area())
}

func (a *App) HandlePress(ev button.Event) {
	a.lastPressed = &ev
}
