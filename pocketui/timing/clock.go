package timing

import "time"

// Clock is the time source used to measure press durations.
// Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

// Delayer blocks the caller for a fixed duration.
type Delayer interface {
	Wait(d time.Duration)
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so durations between two readings are unaffected by wall clock jumps.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// BusyDelayer sleeps for most of the interval and spins for the tail,
// trading a little CPU for an accurate wake-up.
type BusyDelayer struct {
	// SpinWindow is the tail of the interval spent busy-waiting.
	SpinWindow time.Duration
}

const defaultSpinWindow = 2 * time.Millisecond

func (b BusyDelayer) Wait(d time.Duration) {
	if d <= 0 {
		return
	}

	deadline := time.Now().Add(d)
	spin := b.SpinWindow
	if spin <= 0 {
		spin = defaultSpinWindow
	}

	if d > spin {
		time.Sleep(d - spin)
	}
	for time.Now().Before(deadline) {
		// busy-wait for the remaining window, higher accuracy.
	}
}

// ManualClock is a virtual clock that only moves when told to.
// It doubles as a Delayer whose Wait advances the clock instantly,
// which makes runs reproducible in tests and headless mode.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock starting at the given instant
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (m *ManualClock) Now() time.Time {
	return m.now
}

// Advance moves the clock forward by d
func (m *ManualClock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

func (m *ManualClock) Wait(d time.Duration) {
	if d > 0 {
		m.Advance(d)
	}
}
