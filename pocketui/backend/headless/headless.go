package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/valerio/go-pocketui/pocketui/backend"
	"github.com/valerio/go-pocketui/pocketui/button"
	"github.com/valerio/go-pocketui/pocketui/frame"
	"github.com/valerio/go-pocketui/pocketui/timing"
)

const (
	DefaultWidth  = 40
	DefaultHeight = 13
)

// Backend implements the Backend interface for automated testing and batch processing.
// It also acts as a scripted button source.
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	script         Script
	clock          *timing.ManualClock
	frameTime      time.Duration
	done           bool
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	Name      string // Prefix for snapshot filenames
}

// New creates a headless backend that requests shutdown after maxFrames.
// A non-positive maxFrames runs until stopped externally.
func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

// WithScript drives the simulated buttons from a frame-indexed script
func (h *Backend) WithScript(script Script) *Backend {
	h.script = script
	return h
}

// WithVirtualClock advances clock by frameTime after every presented frame,
// so press durations depend on frame numbers rather than wall time.
func (h *Backend) WithVirtualClock(clock *timing.ManualClock, frameTime time.Duration) *Backend {
	h.clock = clock
	h.frameTime = frameTime
	return h
}

func (h *Backend) Init(config backend.BackendConfig) error {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	h.config = config

	// Set up debug logging for headless mode
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"size", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"script_steps", len(h.script),
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

func (h *Backend) Size() (int, int) {
	return h.config.Width, h.config.Height
}

// Level reports the scripted level for the frame about to be drawn
func (h *Backend) Level(id button.ID) (bool, error) {
	return h.script.Level(h.frameCount, id), nil
}

// Present counts the frame, handles snapshots and signals completion
func (h *Backend) Present(f *frame.Frame) error {
	if h.done {
		return nil
	}
	h.frameCount++

	if h.clock != nil {
		h.clock.Advance(h.frameTime)
	}

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		if err := h.saveSnapshot(f); err != nil {
			return err
		}
	}

	// Log progress periodically
	if h.frameCount%10 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		// Save final snapshot if enabled and we haven't just saved one
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			if err := h.saveSnapshot(f); err != nil {
				return err
			}
		}

		if h.snapshotConfig.Enabled {
			slog.Info("Headless execution completed", "frames", h.maxFrames, "snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.maxFrames)
		}

		h.done = true
		h.config.Callbacks.Quit()
	}

	return nil
}

func (h *Backend) FrameCount() int {
	return h.frameCount
}

func (h *Backend) Cleanup() error {
	return nil
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, name string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		Name:     name,
	}

	if !config.Enabled {
		return config, nil
	}

	if config.Name == "" {
		config.Name = "pocketui"
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "pocketui-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	return config, nil
}

// SnapshotPath returns where the snapshot for a frame number is written
func (c SnapshotConfig) SnapshotPath(frameNum int) string {
	return filepath.Join(c.Directory, fmt.Sprintf("%s_frame_%d.txt", c.Name, frameNum))
}

// saveSnapshot writes the frame as plain text with a short metadata header
func (h *Backend) saveSnapshot(f *frame.Frame) error {
	path := h.snapshotConfig.SnapshotPath(h.frameCount)
	w, ht := f.Size()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# PocketUI Frame Snapshot\n")
	fmt.Fprintf(&sb, "# Frame: %d\n", h.frameCount)
	fmt.Fprintf(&sb, "# Size: %dx%d cells\n", w, ht)
	fmt.Fprintf(&sb, "#\n")
	for _, line := range f.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to save snapshot for frame %d: %w", h.frameCount, err)
	}
	slog.Debug("Saved frame snapshot", "frame", h.frameCount, "path", path)
	return nil
}
