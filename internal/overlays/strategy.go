package overlays

import "time"

// Strategy names an execution path for one request.
type Strategy int

const (
	// StrategyStandard re-encodes the whole main video with the overlay
	// gated to the resolved window.
	StrategyStandard Strategy = iota
	// StrategyOptimized cuts the untouched prefix/suffix losslessly,
	// re-encodes only the overlapped segment and reassembles.
	StrategyOptimized
)

func (s Strategy) String() string {
	if s == StrategyOptimized {
		return "optimized"
	}
	return "standard"
}

// EdgeTolerance absorbs float and container rounding when comparing
// window edges against the timeline bounds.
const EdgeTolerance = 100 * time.Millisecond

// optimizeRatio is the fraction of the main duration above which segment
// decomposition stops paying for its extra process invocations.
const optimizeRatio = 0.8

// ChooseStrategy picks the execution path for a resolved window. Pure
// function of durations and the window; the threshold is exclusive and
// the whole-timeline guard dominates the ratio test.
func ChooseStrategy(w Window, mainDur time.Duration, allowOptimized bool) Strategy {
	if !allowOptimized || mainDur <= 0 {
		return StrategyStandard
	}
	if float64(w.SegmentDuration()) >= optimizeRatio*float64(mainDur) {
		return StrategyStandard
	}
	// A window spanning effectively the whole timeline leaves no
	// untouched prefix or suffix to skip.
	if w.Start <= EdgeTolerance && w.End >= mainDur-EdgeTolerance {
		return StrategyStandard
	}
	return StrategyOptimized
}
