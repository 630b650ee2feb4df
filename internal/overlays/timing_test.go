package overlays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindowFullDuration(t *testing.T) {
	req := Request{Mode: FullDuration}

	w, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), w.Start)
	assert.Equal(t, 60*time.Second, w.End)
	assert.Equal(t, 60*time.Second, w.SegmentDuration())
}

func TestResolveWindowOverlayNative(t *testing.T) {
	req := Request{Mode: OverlayNative, RangeStart: 10 * time.Second}

	w, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, w.Start)
	assert.Equal(t, 18*time.Second, w.End)
	assert.Equal(t, 8*time.Second, w.SegmentDuration())
}

func TestResolveWindowCustomRange(t *testing.T) {
	req := Request{Mode: CustomRange, RangeStart: 5 * time.Second, RangeEnd: 20 * time.Second}

	w, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, w.Start)
	assert.Equal(t, 20*time.Second, w.End)
}

func TestResolveWindowCustomRangeDefaultsEndToMainDuration(t *testing.T) {
	req := Request{Mode: CustomRange, RangeStart: 5 * time.Second}

	w, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, w.End)
}

func TestResolveWindowClampsEndToMainDuration(t *testing.T) {
	req := Request{Mode: CustomRange, RangeStart: 50 * time.Second, RangeEnd: 90 * time.Second}

	w, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, w.End)
}

func TestResolveWindowNativeClampedByMainDuration(t *testing.T) {
	// Overlay runs past the end of the main video.
	req := Request{Mode: OverlayNative, RangeStart: 55 * time.Second}

	w, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 55*time.Second, w.Start)
	assert.Equal(t, 60*time.Second, w.End)
}

func TestResolveWindowRejectsEndBeforeStart(t *testing.T) {
	req := Request{Mode: CustomRange, RangeStart: 20 * time.Second, RangeEnd: 10 * time.Second}

	_, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveWindowRejectsEqualStartAndEnd(t *testing.T) {
	req := Request{Mode: CustomRange, RangeStart: 10 * time.Second, RangeEnd: 10 * time.Second}

	_, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveWindowRejectsStartBeyondDuration(t *testing.T) {
	// Start past the end clamps the window empty.
	req := Request{Mode: CustomRange, RangeStart: 70 * time.Second, RangeEnd: 80 * time.Second}

	_, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveWindowIsIdempotent(t *testing.T) {
	req := Request{Mode: OverlayNative, RangeStart: 10 * time.Second}

	first, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)
	second, err := ResolveWindow(req, 60*time.Second, 8*time.Second)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRequestValidate(t *testing.T) {
	valid := Request{
		MainPath:    "main.mp4",
		OverlayPath: "overlay.mp4",
		OutputPath:  "out.mp4",
		SizePercent: 20,
		Chroma:      ChromaKey{Enabled: true, Color: "0x00FF00", Similarity: 0.3, Blend: 0.1},
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.OverlayPath = ""
	assert.Error(t, missing.Validate())

	badSize := valid
	badSize.SizePercent = 0
	assert.Error(t, badSize.Validate())

	badSimilarity := valid
	badSimilarity.Chroma.Similarity = 1.5
	assert.Error(t, badSimilarity.Validate())

	badBlend := valid
	badBlend.Chroma.Blend = 0.5
	assert.Error(t, badBlend.Validate())

	// Chroma parameters are ignored when keying is off.
	disabled := valid
	disabled.Chroma = ChromaKey{}
	assert.NoError(t, disabled.Validate())
}

func TestParseTimingMode(t *testing.T) {
	for name, want := range map[string]TimingMode{
		"full":     FullDuration,
		"range":    CustomRange,
		"native":   OverlayNative,
		"original": OverlayNative,
	} {
		got, err := ParseTimingMode(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseTimingMode("sideways")
	assert.Error(t, err)
}
