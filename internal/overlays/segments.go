package overlays

import "time"

// SegmentKind types a span within the decomposed timeline.
type SegmentKind int

const (
	SegmentBefore SegmentKind = iota
	SegmentOverlay
	SegmentAfter
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentBefore:
		return "before"
	case SegmentOverlay:
		return "overlay"
	case SegmentAfter:
		return "after"
	default:
		return "unknown"
	}
}

// Segment is a typed span over the main video's timeline.
type Segment struct {
	Kind  SegmentKind
	Start time.Duration
	End   time.Duration
}

// PlanSegments decomposes the timeline around a resolved window. The
// overlay segment always exists; before/after exist only when the window
// leaves more than EdgeTolerance of untouched material at that edge. The
// returned order (before, overlay, after) is the reassembly order.
func PlanSegments(w Window, mainDur time.Duration) []Segment {
	segments := make([]Segment, 0, 3)

	if w.Start > EdgeTolerance {
		segments = append(segments, Segment{Kind: SegmentBefore, Start: 0, End: w.Start})
	}

	segments = append(segments, Segment{Kind: SegmentOverlay, Start: w.Start, End: w.End})

	if w.End < mainDur-EdgeTolerance {
		segments = append(segments, Segment{Kind: SegmentAfter, Start: w.End, End: mainDur})
	}

	return segments
}
