package frame

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestBlock_Render(t *testing.T) {
	f := New(12, 3)
	f.Render(&Block{Title: "Hi", Border: BorderRounded}, f.Area())

	assert.Equal(t, []string{
		"╭Hi────────╮",
		"│          │",
		"╰──────────╯",
	}, f.Lines())
}

func TestBlock_CenteredTitle(t *testing.T) {
	f := New(10, 3)
	f.Render(&Block{Title: "ab", TitleAlign: AlignCenter}, f.Area())
	assert.Equal(t, "┌───ab───┐", f.Lines()[0])
}

func TestParagraph_AlignmentAndClipping(t *testing.T) {
	f := New(8, 2)
	p := &Paragraph{
		Lines: []Line{
			NewLine(Raw("ab")),
			NewLine(Raw("cd")),
			NewLine(Raw("never drawn")),
		},
		Align: AlignCenter,
	}
	f.Render(p, f.Area())
	assert.Equal(t, []string{"   ab   ", "   cd   "}, f.Lines())

	f.Clear()
	right := &Paragraph{Lines: []Line{{Spans: []Span{Raw("x")}, Align: AlignRight}}}
	f.Render(right, f.Area())
	assert.Equal(t, "       x", f.Lines()[0])
}

func TestParagraph_InsideBlock(t *testing.T) {
	f := New(10, 4)
	f.Render(&Paragraph{
		Lines: []Line{NewLine(Raw("one"), Raw("two"))},
		Block: &Block{},
	}, f.Area())
	assert.Equal(t, "│onetwo  │", f.Lines()[1])
}

func TestTabs_HighlightsSelected(t *testing.T) {
	highlight := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	f := New(30, 1)
	f.Render(&Tabs{
		Titles:         []string{"Main", "Stats"},
		Selected:       1,
		HighlightStyle: highlight,
	}, f.Area())

	assert.True(t, f.Contains("Main │ Stats"))
	c, _ := f.Cell(8, 0)
	assert.Equal(t, 'S', c.Rune)
	assert.Equal(t, highlight, c.Style)
}

func TestGauge_Render(t *testing.T) {
	f := New(10, 1)
	f.Render(&Gauge{Percent: 50}, f.Area())
	c, _ := f.Cell(0, 0)
	assert.Equal(t, '█', c.Rune)
	c, _ = f.Cell(9, 0)
	assert.Equal(t, ' ', c.Rune)
	assert.True(t, f.Contains("50%"))

	f.Clear()
	f.Render(&Gauge{Percent: 250}, f.Area())
	assert.True(t, f.Contains("100%"))
}

func TestSparkline_Render(t *testing.T) {
	f := New(3, 1)
	f.Render(&Sparkline{Data: []uint64{0, 4, 8}}, f.Area())
	assert.Equal(t, " ▄█", f.Lines()[0])

	f = New(1, 2)
	f.Render(&Sparkline{Data: []uint64{1}, Max: 2}, f.Area())
	assert.Equal(t, []string{" ", "█"}, f.Lines())
}

func TestPad(t *testing.T) {
	assert.Equal(t, " Info ", Pad("Info"))
	assert.Equal(t, " Info ", Pad("  Info "))
}
