package overlays

import (
	"fmt"
	"time"
)

// TimingMode selects how the overlay window is derived from a request.
type TimingMode int

const (
	// FullDuration shows the overlay across the whole main video.
	FullDuration TimingMode = iota
	// CustomRange shows the overlay between RangeStart and RangeEnd.
	CustomRange
	// OverlayNative shows the overlay from RangeStart for its own length.
	OverlayNative
)

func (m TimingMode) String() string {
	switch m {
	case FullDuration:
		return "full"
	case CustomRange:
		return "range"
	case OverlayNative:
		return "native"
	default:
		return "unknown"
	}
}

// ParseTimingMode parses a timing mode name as used in CLI flags and
// batch manifests.
func ParseTimingMode(s string) (TimingMode, error) {
	switch s {
	case "full":
		return FullDuration, nil
	case "range":
		return CustomRange, nil
	case "native", "original":
		return OverlayNative, nil
	default:
		return 0, fmt.Errorf("unknown timing mode %q (want full, range or native)", s)
	}
}

// ChromaKey holds background-removal parameters.
type ChromaKey struct {
	Enabled    bool
	Color      string
	Similarity float64
	Blend      float64
}

// Request is one immutable overlay assembly request.
type Request struct {
	MainPath    string
	OverlayPath string
	OutputPath  string

	Mode       TimingMode
	RangeStart time.Duration
	RangeEnd   time.Duration

	Position    Position
	SizePercent float64
	Chroma      ChromaKey

	KeepOverlayAudio bool
	Preset           string

	// DisableOptimization forces the full re-encode path.
	DisableOptimization bool
}

// Validate checks parameter domains. Timing consistency against asset
// durations is checked later by ResolveWindow.
func (r Request) Validate() error {
	if r.MainPath == "" {
		return fmt.Errorf("main video path is required")
	}
	if r.OverlayPath == "" {
		return fmt.Errorf("overlay video path is required")
	}
	if r.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if r.SizePercent <= 0 || r.SizePercent > 100 {
		return fmt.Errorf("size percent must be in (0, 100], got %.1f", r.SizePercent)
	}
	if r.RangeStart < 0 {
		return fmt.Errorf("range start must not be negative")
	}
	if r.Chroma.Enabled {
		if r.Chroma.Similarity <= 0 || r.Chroma.Similarity > 1 {
			return fmt.Errorf("chroma similarity must be in (0, 1], got %.2f", r.Chroma.Similarity)
		}
		if r.Chroma.Blend < 0 || r.Chroma.Blend > 0.3 {
			return fmt.Errorf("chroma blend must be in [0, 0.3], got %.2f", r.Chroma.Blend)
		}
	}
	return nil
}
