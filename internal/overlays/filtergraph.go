package overlays

import (
	"fmt"
	"time"

	"github.com/keagan/overcut/internal/ffmpeg"
	"github.com/keagan/overcut/pkg/util"
)

// Graph describes the overlay filter graph for one composite: input 0 is
// the target video, input 1 the overlay clip. Build validates the fields
// and emits the -filter_complex expression, so callers never interpolate
// filter strings by hand.
type Graph struct {
	// OverlayWidth is the scaled overlay width in pixels.
	OverlayWidth int

	Chroma       ChromaKey
	PositionExpr string

	// GateStart/GateEnd bound overlay visibility in the target's own
	// timeline.
	GateStart time.Duration
	GateEnd   time.Duration

	// MixAudio mixes the overlay's audio track into the main track.
	// The overlay audio is trimmed to the gate span and delayed to the
	// gate start, so it lands in the same window as the overlay video
	// whether the target is the full video or a pre-cut segment.
	MixAudio bool
}

// Build returns the filter_complex expression for the graph.
func (g Graph) Build() (string, error) {
	if g.OverlayWidth <= 0 {
		return "", fmt.Errorf("overlay width must be positive, got %d", g.OverlayWidth)
	}
	if g.PositionExpr == "" {
		return "", fmt.Errorf("position expression is required")
	}
	if g.GateEnd <= g.GateStart {
		return "", fmt.Errorf("gate end %s must be after gate start %s", g.GateEnd, g.GateStart)
	}
	if g.Chroma.Enabled && g.Chroma.Color == "" {
		return "", fmt.Errorf("chroma key color is required")
	}

	chain := ffmpeg.NewFilterBuilder().ScaleWidth(g.OverlayWidth)
	if g.Chroma.Enabled {
		// Keying happens after scaling so the similarity/blend
		// thresholds act on final pixel size.
		chain.ChromaKey(g.Chroma.Color, g.Chroma.Similarity, g.Chroma.Blend)
	}

	enable := fmt.Sprintf("between(t,%s,%s)",
		util.FormatSeconds(g.GateStart), util.FormatSeconds(g.GateEnd))

	expr := fmt.Sprintf("[1:v]%s[ov];[0:v][ov]overlay=%s:enable='%s'[v]",
		chain.Build(), g.PositionExpr, enable)

	if g.MixAudio {
		// duration=first keeps the mix at the target's length so an
		// overlay with a longer audio track cannot stretch a segment.
		expr += fmt.Sprintf(";[1:a]atrim=0:%s,adelay=%d:all=1[oa];[0:a][oa]amix=inputs=2:duration=first[a]",
			util.FormatSeconds(g.GateEnd-g.GateStart), g.GateStart.Milliseconds())
	}

	return expr, nil
}

// MapArgs returns the stream mapping matching the built graph.
func (g Graph) MapArgs() []string {
	if g.MixAudio {
		return []string{"-map", "[v]", "-map", "[a]"}
	}
	return []string{"-map", "[v]", "-map", "0:a?"}
}
