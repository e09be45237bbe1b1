package button

import "fmt"

// PressKind represents how long a single button was held before release
type PressKind int

const (
	Short PressKind = iota + 1 // Released under 500ms
	Long                       // Released in [500ms, 2000ms)
)

func (k PressKind) String() string {
	switch k {
	case Short:
		return "Short Press"
	case Long:
		return "Long Press"
	default:
		return "Unknown Press"
	}
}

// ID identifies which physical button produced an event.
// Both is synthetic and only used while the two buttons are held together.
type ID int

const (
	First ID = iota
	Second
	Both
)

func (id ID) String() string {
	switch id {
	case First:
		return "Button 1"
	case Second:
		return "Button 2"
	case Both:
		return "Both Buttons"
	default:
		return fmt.Sprintf("Button(%d)", int(id))
	}
}

// Event is the only value handed to the application: either a classified
// release of a single button, or the level-triggered both-held signal.
type Event struct {
	Button ID
	Kind   PressKind // zero for Both
}

// Pressed returns the event for a classified single-button release
func Pressed(id ID, kind PressKind) Event {
	return Event{Button: id, Kind: kind}
}

// BothHeld returns the event delivered while both buttons are down
func BothHeld() Event {
	return Event{Button: Both}
}

// IsBoth reports whether this is the simultaneous-press event
func (e Event) IsBoth() bool {
	return e.Button == Both
}

// IsFirst reports whether the event came from the first (mode) button
func (e Event) IsFirst() bool {
	return e.Button == First
}

// IsSecond reports whether the event came from the second (menu) button
func (e Event) IsSecond() bool {
	return e.Button == Second
}

func (e Event) IsShort() bool {
	return !e.IsBoth() && e.Kind == Short
}

func (e Event) IsLong() bool {
	return !e.IsBoth() && e.Kind == Long
}

func (e Event) String() string {
	if e.IsBoth() {
		return e.Button.String()
	}
	return fmt.Sprintf("%s (%s)", e.Button, e.Kind)
}
