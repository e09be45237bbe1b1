package frame

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Widget is anything that can draw itself into an area of a frame
type Widget interface {
	Render(f *Frame, area Rect)
}

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

type BorderType int

const (
	BorderPlain BorderType = iota
	BorderRounded
)

var borderSets = map[BorderType][6]rune{
	//                topLeft, topRight, bottomLeft, bottomRight, horizontal, vertical
	BorderPlain:   {'┌', '┐', '└', '┘', '─', '│'},
	BorderRounded: {'╭', '╮', '╰', '╯', '─', '│'},
}

// Span is a run of text with a single style
type Span struct {
	Text  string
	Style tcell.Style
}

func Raw(text string) Span {
	return Span{Text: text, Style: tcell.StyleDefault}
}

func Styled(text string, style tcell.Style) Span {
	return Span{Text: text, Style: style}
}

// Line is a row of spans
type Line struct {
	Spans []Span
	Align Alignment
}

func NewLine(spans ...Span) Line {
	return Line{Spans: spans}
}

// Text is a single-span line
func Text(text string, style tcell.Style) Line {
	return NewLine(Styled(text, style))
}

func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

func (l Line) render(f *Frame, x, y, width int, align Alignment) {
	if l.Align != AlignLeft {
		align = l.Align
	}
	switch align {
	case AlignCenter:
		x += max((width-l.Width())/2, 0)
	case AlignRight:
		x += max(width-l.Width(), 0)
	}
	end := x + width
	for _, s := range l.Spans {
		if x >= end {
			return
		}
		x += f.SetString(x, y, s.Text, s.Style, end-x)
	}
}

// Block draws a border with an optional title around its content area
type Block struct {
	Title       string
	TitleAlign  Alignment
	Border      BorderType
	BorderStyle tcell.Style
}

func (b *Block) Render(f *Frame, area Rect) {
	if area.Width < 2 || area.Height < 2 {
		return
	}
	set := borderSets[b.Border]
	left, top := area.X, area.Y
	right, bottom := area.X+area.Width-1, area.Y+area.Height-1

	for x := left + 1; x < right; x++ {
		f.SetCell(x, top, set[4], b.BorderStyle)
		f.SetCell(x, bottom, set[4], b.BorderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		f.SetCell(left, y, set[5], b.BorderStyle)
		f.SetCell(right, y, set[5], b.BorderStyle)
	}
	f.SetCell(left, top, set[0], b.BorderStyle)
	f.SetCell(right, top, set[1], b.BorderStyle)
	f.SetCell(left, bottom, set[2], b.BorderStyle)
	f.SetCell(right, bottom, set[3], b.BorderStyle)

	if b.Title != "" {
		title := NewLine(Styled(b.Title, b.BorderStyle))
		title.render(f, left+1, top, area.Width-2, b.TitleAlign)
	}
}

// inner renders the optional block and returns the content area
func inner(f *Frame, block *Block, area Rect) Rect {
	if block == nil {
		return area
	}
	block.Render(f, area)
	return area.Inner()
}

// Paragraph renders lines top to bottom, clipping what doesn't fit
type Paragraph struct {
	Lines []Line
	Block *Block
	Align Alignment
}

func (p *Paragraph) Render(f *Frame, area Rect) {
	area = inner(f, p.Block, area)
	for i, line := range p.Lines {
		if i >= area.Height {
			break
		}
		line.render(f, area.X, area.Y+i, area.Width, p.Align)
	}
}

// Tabs renders a row of titles with the selected one highlighted
type Tabs struct {
	Titles         []string
	Selected       int
	Block          *Block
	Style          tcell.Style
	HighlightStyle tcell.Style
}

func (t *Tabs) Render(f *Frame, area Rect) {
	area = inner(f, t.Block, area)
	if area.Empty() {
		return
	}
	var spans []Span
	for i, title := range t.Titles {
		if i > 0 {
			spans = append(spans, Styled(" │ ", t.Style))
		}
		style := t.Style
		if i == t.Selected {
			style = t.HighlightStyle
		}
		spans = append(spans, Styled(title, style))
	}
	NewLine(spans...).render(f, area.X+1, area.Y, area.Width-1, AlignLeft)
}

// List renders one item per row
type List struct {
	Items []Line
	Block *Block
}

func (l *List) Render(f *Frame, area Rect) {
	(&Paragraph{Lines: l.Items, Block: l.Block}).Render(f, area)
}

// Gauge renders a horizontal progress bar with a centered percentage label
type Gauge struct {
	Percent int
	Block   *Block
	Style   tcell.Style
}

func (g *Gauge) Render(f *Frame, area Rect) {
	area = inner(f, g.Block, area)
	if area.Empty() {
		return
	}
	pct := min(max(g.Percent, 0), 100)
	filled := area.Width * pct / 100
	label := fmt.Sprintf("%d%%", pct)
	labelX := area.X + (area.Width-len(label))/2
	labelY := area.Y + area.Height/2
	_, bg, _ := g.Style.Decompose()

	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			if x-area.X < filled {
				f.SetCell(x, y, '█', g.Style)
			} else {
				f.SetCell(x, y, ' ', g.Style)
			}
		}
	}
	for i, r := range label {
		x := labelX + i
		style := g.Style
		if x-area.X < filled {
			fg, _, _ := g.Style.Decompose()
			style = tcell.StyleDefault.Foreground(bg).Background(fg)
		}
		f.SetCell(x, labelY, r, style)
	}
}

var sparkBars = []rune(" ▁▂▃▄▅▆▇█")

// Sparkline renders one column per sample, scaled to the tallest value
type Sparkline struct {
	Data  []uint64
	Max   uint64 // zero means use the largest sample
	Block *Block
	Style tcell.Style
}

func (s *Sparkline) Render(f *Frame, area Rect) {
	area = inner(f, s.Block, area)
	if area.Empty() || len(s.Data) == 0 {
		return
	}
	top := s.Max
	if top == 0 {
		for _, v := range s.Data {
			top = max(top, v)
		}
	}
	if top == 0 {
		return
	}

	steps := uint64(len(sparkBars) - 1)
	for i, v := range s.Data {
		if i >= area.Width {
			break
		}
		// height of this column in eighths of a cell
		level := min(v, top) * uint64(area.Height) * steps / top
		for row := 0; row < area.Height; row++ {
			y := area.Y + area.Height - 1 - row
			base := uint64(row) * steps
			var r rune
			switch {
			case level >= base+steps:
				r = sparkBars[steps]
			case level > base:
				r = sparkBars[level-base]
			default:
				r = sparkBars[0]
			}
			f.SetCell(area.X+i, y, r, s.Style)
		}
	}
}

// Pad returns s padded with spaces on both sides to fit a border title
func Pad(s string) string {
	return " " + strings.TrimSpace(s) + " "
}
