package button

import (
	"time"

	"github.com/valerio/go-pocketui/pocketui/timing"
)

const (
	// LongPressThreshold is the shortest hold classified as Long
	LongPressThreshold = 500 * time.Millisecond
	// DiscardThreshold is the shortest hold that yields no event at all
	DiscardThreshold = 2000 * time.Millisecond
)

// Classify maps a hold duration to a press kind.
// Holds of DiscardThreshold or longer are dropped and report false.
//
// The clock is assumed monotonic; a negative duration can only come from a
// faulty time source and falls into the Short branch.
func Classify(elapsed time.Duration) (PressKind, bool) {
	switch {
	case elapsed < LongPressThreshold:
		return Short, true
	case elapsed < DiscardThreshold:
		return Long, true
	default:
		return 0, false
	}
}

// Classifier tracks one physical button and classifies each release.
// It is not safe for concurrent use; the owning loop is its only caller.
type Classifier struct {
	clock     timing.Clock
	pressedAt time.Time
	pressed   bool
}

// NewClassifier returns a classifier in the released state.
// A nil clock falls back to the system clock.
func NewClassifier(clock timing.Clock) *Classifier {
	if clock == nil {
		clock = timing.SystemClock{}
	}
	return &Classifier{clock: clock}
}

// Update feeds the current raw level of the button.
// A kind is returned only on the sample where the button goes from down to up.
func (c *Classifier) Update(isPressed bool) (PressKind, bool) {
	if isPressed {
		if !c.pressed {
			c.pressedAt = c.clock.Now()
			c.pressed = true
		}
		return 0, false
	}

	if !c.pressed {
		return 0, false
	}

	elapsed := c.clock.Now().Sub(c.pressedAt)
	c.Reset()

	return Classify(elapsed)
}

// Pressed reports whether a press is currently being timed
func (c *Classifier) Pressed() bool {
	return c.pressed
}

// PressedAt returns the start of the current press, if any
func (c *Classifier) PressedAt() (time.Time, bool) {
	return c.pressedAt, c.pressed
}

// Reset forgets any press in progress without emitting an event
func (c *Classifier) Reset() {
	c.pressedAt = time.Time{}
	c.pressed = false
}
