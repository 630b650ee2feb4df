package overlays

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBuildWithChromaKey(t *testing.T) {
	g := Graph{
		OverlayWidth: 384,
		Chroma:       ChromaKey{Enabled: true, Color: "0x00FF00", Similarity: 0.3, Blend: 0.1},
		PositionExpr: "main_w-overlay_w-20:20",
		GateStart:    10 * time.Second,
		GateEnd:      18 * time.Second,
	}

	expr, err := g.Build()
	require.NoError(t, err)

	assert.Equal(t,
		"[1:v]scale=384:-2,chromakey=0x00FF00:0.30:0.10[ov];"+
			"[0:v][ov]overlay=main_w-overlay_w-20:20:enable='between(t,10.000,18.000)'[v]",
		expr)
}

func TestGraphBuildScalesBeforeKeying(t *testing.T) {
	g := Graph{
		OverlayWidth: 200,
		Chroma:       ChromaKey{Enabled: true, Color: "0x00FF00", Similarity: 0.3, Blend: 0.1},
		PositionExpr: "20:20",
		GateEnd:      time.Second,
	}

	expr, err := g.Build()
	require.NoError(t, err)

	scaleIdx := strings.Index(expr, "scale=")
	keyIdx := strings.Index(expr, "chromakey=")
	require.NotEqual(t, -1, scaleIdx)
	require.NotEqual(t, -1, keyIdx)
	assert.Less(t, scaleIdx, keyIdx, "key thresholds must act on final pixel size")
}

func TestGraphBuildWithoutChromaKey(t *testing.T) {
	g := Graph{
		OverlayWidth: 384,
		PositionExpr: "20:20",
		GateEnd:      8 * time.Second,
	}

	expr, err := g.Build()
	require.NoError(t, err)

	assert.NotContains(t, expr, "chromakey")
	assert.Contains(t, expr, "enable='between(t,0.000,8.000)'")
}

func TestGraphBuildAudioMix(t *testing.T) {
	g := Graph{
		OverlayWidth: 384,
		PositionExpr: "20:20",
		GateEnd:      8 * time.Second,
		MixAudio:     true,
	}

	expr, err := g.Build()
	require.NoError(t, err)

	assert.Contains(t, expr, "[1:a]atrim=0:8.000,adelay=0:all=1[oa];[0:a][oa]amix=inputs=2:duration=first[a]")
	assert.Equal(t, []string{"-map", "[v]", "-map", "[a]"}, g.MapArgs())
}

func TestGraphAudioMixPlacementMatchesAcrossTargets(t *testing.T) {
	// The same request composited against the full main video (gate
	// [10,18) in the main timeline) and against a pre-cut segment
	// (gate [0,8) in the segment's local timeline) must place the
	// overlay audio in the same window of the final output.
	fullVideo := Graph{
		OverlayWidth: 384,
		PositionExpr: "20:20",
		GateStart:    10 * time.Second,
		GateEnd:      18 * time.Second,
		MixAudio:     true,
	}
	segment := Graph{
		OverlayWidth: 384,
		PositionExpr: "20:20",
		GateStart:    0,
		GateEnd:      8 * time.Second,
		MixAudio:     true,
	}

	fullExpr, err := fullVideo.Build()
	require.NoError(t, err)
	segExpr, err := segment.Build()
	require.NoError(t, err)

	// Trim span is the gate span on both; the delay re-bases the
	// overlay audio onto each target's own timeline.
	assert.Contains(t, fullExpr,
		"[1:a]atrim=0:8.000,adelay=10000:all=1[oa];[0:a][oa]amix=inputs=2:duration=first[a]")
	assert.Contains(t, segExpr,
		"[1:a]atrim=0:8.000,adelay=0:all=1[oa];[0:a][oa]amix=inputs=2:duration=first[a]")

	// Neither mix may outlast its target.
	assert.Contains(t, fullExpr, "duration=first")
	assert.Contains(t, segExpr, "duration=first")
}

func TestGraphMapArgsPassthroughAudio(t *testing.T) {
	g := Graph{OverlayWidth: 384, PositionExpr: "20:20", GateEnd: time.Second}
	assert.Equal(t, []string{"-map", "[v]", "-map", "0:a?"}, g.MapArgs())
}

func TestGraphBuildValidation(t *testing.T) {
	base := Graph{OverlayWidth: 384, PositionExpr: "20:20", GateEnd: time.Second}

	noWidth := base
	noWidth.OverlayWidth = 0
	_, err := noWidth.Build()
	assert.Error(t, err)

	noPosition := base
	noPosition.PositionExpr = ""
	_, err = noPosition.Build()
	assert.Error(t, err)

	badGate := base
	badGate.GateStart = 2 * time.Second
	badGate.GateEnd = time.Second
	_, err = badGate.Build()
	assert.Error(t, err)

	noColor := base
	noColor.Chroma = ChromaKey{Enabled: true, Similarity: 0.3}
	_, err = noColor.Build()
	assert.Error(t, err)
}

func TestDefaultPositionsCoversNineAnchors(t *testing.T) {
	positions := DefaultPositions()
	require.Len(t, positions, 9)

	// Center is the only marginless anchor.
	assert.Equal(t, "(main_w-overlay_w)/2:(main_h-overlay_h)/2", positions[Center])
	for pos, expr := range positions {
		if pos == Center {
			continue
		}
		assert.Contains(t, expr, "20", "anchor %s should keep an edge margin", pos)
	}
}
