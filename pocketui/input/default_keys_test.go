package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-pocketui/pocketui/button"
)

func TestGetDefaultMapping(t *testing.T) {
	tests := []struct {
		key    string
		button button.ID
		long   bool
		quit   bool
	}{
		{key: "a", button: button.First},
		{key: "A", button: button.First, long: true},
		{key: "d", button: button.Second},
		{key: "D", button: button.Second, long: true},
		{key: "s", button: button.Both},
		{key: "q", quit: true},
		{key: "Escape", quit: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			b, ok := GetDefaultMapping(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.quit, b.Quit)
			if tt.quit {
				return
			}
			assert.Equal(t, tt.button, b.Button)
			if tt.long {
				assert.Equal(t, LongHold, b.Hold)
			} else {
				assert.Equal(t, TapHold, b.Hold)
			}
		})
	}

	_, ok := GetDefaultMapping("F13")
	assert.False(t, ok)
}

func TestHoldDurationsClassifyAsAdvertised(t *testing.T) {
	kind, ok := button.Classify(TapHold)
	assert.True(t, ok)
	assert.Equal(t, button.Short, kind)

	kind, ok = button.Classify(LongHold)
	assert.True(t, ok)
	assert.Equal(t, button.Long, kind)

	_, ok = button.Classify(DiscardHold)
	assert.False(t, ok)
}
