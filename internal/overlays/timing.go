package overlays

import (
	"errors"
	"fmt"
	"time"

	"github.com/keagan/overcut/pkg/util"
)

// ErrInvalidWindow reports an overlay window that resolves to a
// non-positive span.
var ErrInvalidWindow = errors.New("overlay window end must be after start")

// Window is a resolved overlay time span within the main video.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// SegmentDuration returns the span covered by the window.
func (w Window) SegmentDuration() time.Duration {
	return w.End - w.Start
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", util.FormatDuration(w.Start), util.FormatDuration(w.End))
}

// ResolveWindow converts a request's timing mode into a concrete window,
// clamped to the main video's duration. Pure: identical inputs resolve to
// identical windows.
func ResolveWindow(req Request, mainDur, overlayDur time.Duration) (Window, error) {
	if mainDur <= 0 {
		return Window{}, fmt.Errorf("main duration must be positive")
	}

	var w Window
	switch req.Mode {
	case FullDuration:
		w = Window{Start: 0, End: mainDur}
	case OverlayNative:
		w = Window{Start: req.RangeStart, End: req.RangeStart + overlayDur}
	case CustomRange:
		end := req.RangeEnd
		if end == 0 {
			end = mainDur
		}
		w = Window{Start: req.RangeStart, End: end}
	default:
		return Window{}, fmt.Errorf("unknown timing mode %d", req.Mode)
	}

	if w.Start < 0 {
		return Window{}, fmt.Errorf("%w: start %s is negative", ErrInvalidWindow, w.Start)
	}
	if w.End > mainDur {
		w.End = mainDur
	}
	if w.End <= w.Start {
		return Window{}, fmt.Errorf("%w: resolved %s", ErrInvalidWindow, w)
	}

	return w, nil
}
