package headless

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/valerio/go-pocketui/pocketui/button"
)

// ScriptStep sets both button levels from Frame onwards
type ScriptStep struct {
	Frame  int
	First  bool
	Second bool
}

// Script drives simulated button levels by frame number
type Script []ScriptStep

// ParseScript reads a comma separated list of "frame:levels" steps, where
// levels is two characters: 'A' (first down), 'B' (second down) or '-' (up).
// For example "0:--,10:A-,40:--" holds button 1 from frame 10 to 39.
func ParseScript(s string) (Script, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var script Script
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		frameStr, levels, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid script step %q: expected frame:levels", part)
		}
		frameNum, err := strconv.Atoi(frameStr)
		if err != nil || frameNum < 0 {
			return nil, fmt.Errorf("invalid script step %q: bad frame number", part)
		}
		if len(levels) != 2 {
			return nil, fmt.Errorf("invalid script step %q: levels must be two characters", part)
		}

		step := ScriptStep{Frame: frameNum}
		switch levels[0] {
		case 'A', 'a':
			step.First = true
		case '-':
		default:
			return nil, fmt.Errorf("invalid script step %q: first level must be 'A' or '-'", part)
		}
		switch levels[1] {
		case 'B', 'b':
			step.Second = true
		case '-':
		default:
			return nil, fmt.Errorf("invalid script step %q: second level must be 'B' or '-'", part)
		}
		script = append(script, step)
	}

	sort.SliceStable(script, func(i, j int) bool {
		return script[i].Frame < script[j].Frame
	})
	return script, nil
}

// At returns the levels in effect at the given frame
func (s Script) At(frameNum int) (first, second bool) {
	for _, step := range s {
		if step.Frame > frameNum {
			break
		}
		first, second = step.First, step.Second
	}
	return first, second
}

func (s Script) Level(frameNum int, id button.ID) bool {
	first, second := s.At(frameNum)
	switch id {
	case button.First:
		return first
	case button.Second:
		return second
	default:
		return first && second
	}
}
