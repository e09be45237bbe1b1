package input

import (
	"time"

	"github.com/valerio/go-pocketui/pocketui/button"
)

const (
	// TapHold is how long a single key event keeps a simulated button down.
	// Key repeat events arriving within this window extend the hold.
	TapHold = 150 * time.Millisecond
	// LongHold simulates a press that classifies as long
	LongHold = 1 * time.Second
	// DiscardHold simulates a press too long to produce any event
	DiscardHold = 2500 * time.Millisecond
)

// Binding describes what a key does to the simulated buttons
type Binding struct {
	Button button.ID     // button.Both holds both levels at once
	Hold   time.Duration // how long the level stays down after the key event
	Quit   bool          // ends the program instead of pressing a button
}

// DefaultKeyMap provides default key mappings that work across backends.
// Lowercase keys tap, uppercase keys hold long enough for a long press.
var DefaultKeyMap = map[string]Binding{
	// Button 1
	"1":    {Button: button.First, Hold: TapHold},
	"a":    {Button: button.First, Hold: TapHold},
	"Left": {Button: button.First, Hold: TapHold},
	"A":    {Button: button.First, Hold: LongHold},
	"!":    {Button: button.First, Hold: LongHold},

	// Button 2
	"2":     {Button: button.Second, Hold: TapHold},
	"d":     {Button: button.Second, Hold: TapHold},
	"Right": {Button: button.Second, Hold: TapHold},
	"D":     {Button: button.Second, Hold: LongHold},
	"@":     {Button: button.Second, Hold: LongHold},

	// Too long, dropped by the classifier
	"z": {Button: button.First, Hold: DiscardHold},
	"x": {Button: button.Second, Hold: DiscardHold},

	// Both buttons together
	"s":     {Button: button.Both, Hold: TapHold},
	"Space": {Button: button.Both, Hold: TapHold},

	"q":      {Quit: true},
	"Escape": {Quit: true},
}

// GetDefaultMapping returns the default binding for a key, if one exists
func GetDefaultMapping(key string) (Binding, bool) {
	b, ok := DefaultKeyMap[key]
	return b, ok
}
