package frame

// Rect is a region of the frame in cell coordinates
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner returns the area left after removing a one-cell border
func (r Rect) Inner() Rect {
	if r.Width < 2 || r.Height < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
}

// Intersect clips r to other
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

type constraintKind int

const (
	kindLength constraintKind = iota
	kindPercentage
	kindMin
)

// Constraint sizes one row band of a vertical split
type Constraint struct {
	kind  constraintKind
	value int
}

// Length is a fixed number of rows
func Length(n int) Constraint {
	return Constraint{kind: kindLength, value: n}
}

// Percentage is a share of the total height
func Percentage(p int) Constraint {
	return Constraint{kind: kindPercentage, value: p}
}

// Min takes at least n rows and shares whatever is left over
func Min(n int) Constraint {
	return Constraint{kind: kindMin, value: n}
}

// SplitVertical divides r into stacked bands. Fixed and percentage bands
// are sized first; Min bands split the remainder evenly. Bands are clipped
// once the area runs out.
func (r Rect) SplitVertical(constraints ...Constraint) []Rect {
	heights := make([]int, len(constraints))
	remaining := r.Height
	var fill []int

	for i, c := range constraints {
		switch c.kind {
		case kindLength:
			heights[i] = c.value
		case kindPercentage:
			heights[i] = r.Height * c.value / 100
		case kindMin:
			heights[i] = c.value
			fill = append(fill, i)
		}
		remaining -= heights[i]
	}

	if remaining > 0 && len(fill) > 0 {
		share := remaining / len(fill)
		extra := remaining % len(fill)
		for n, i := range fill {
			heights[i] += share
			if n < extra {
				heights[i]++
			}
		}
	}

	rects := make([]Rect, len(constraints))
	y := r.Y
	bottom := r.Y + r.Height
	for i, h := range heights {
		if h < 0 {
			h = 0
		}
		if y+h > bottom {
			h = max(bottom-y, 0)
		}
		rects[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += h
	}
	return rects
}
