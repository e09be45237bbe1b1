package frame

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is a single character position on the device screen.
// A zero Rune marks the trailing half of a wide character.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Frame is a reusable cell canvas the application draws into once per
// loop iteration. The loop owns one Frame and hands it to sinks by pointer.
type Frame struct {
	width  int
	height int
	cells  []Cell
}

// New creates a frame with the specified size, cleared to blanks.
func New(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize changes the frame dimensions, reusing the backing buffer when it
// is large enough. Contents are cleared.
func (f *Frame) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := width * height
	if cap(f.cells) >= n {
		f.cells = f.cells[:n]
	} else {
		f.cells = make([]Cell, n)
	}
	f.width = width
	f.height = height
	f.Clear()
}

// Clear resets every cell to a blank with the default style
func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = Cell{Rune: ' ', Style: tcell.StyleDefault}
	}
}

func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

// Area returns the full drawable region
func (f *Frame) Area() Rect {
	return Rect{Width: f.width, Height: f.height}
}

// SetCell writes one cell; coordinates outside the frame are ignored
func (f *Frame) SetCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.cells[y*f.width+x] = Cell{Rune: r, Style: style}
}

func (f *Frame) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return Cell{}, false
	}
	return f.cells[y*f.width+x], true
}

// SetString writes s starting at (x, y), clipped to maxWidth columns and
// the frame edge. It returns the number of columns used.
func (f *Frame) SetString(x, y int, s string, style tcell.Style, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth || x+used+w > f.width {
			break
		}
		f.SetCell(x+used, y, r, style)
		if w == 2 {
			f.SetCell(x+used+1, y, 0, style)
		}
		used += w
	}
	return used
}

// Render draws a widget into the given area of the frame
func (f *Frame) Render(w Widget, area Rect) {
	w.Render(f, area.Intersect(f.Area()))
}

// Lines returns the frame as plain text, one string per row
func (f *Frame) Lines() []string {
	lines := make([]string, f.height)
	var sb strings.Builder
	for y := 0; y < f.height; y++ {
		sb.Reset()
		for x := 0; x < f.width; x++ {
			if r := f.cells[y*f.width+x].Rune; r != 0 {
				sb.WriteRune(r)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

// Contains reports whether any row of the frame contains s
func (f *Frame) Contains(s string) bool {
	for _, line := range f.Lines() {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
