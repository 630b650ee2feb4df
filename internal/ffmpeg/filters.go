package ffmpeg

import (
	"fmt"
	"strings"
)

// FilterBuilder helps construct single-stream ffmpeg filter chains
type FilterBuilder struct {
	filters []string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]string, 0),
	}
}

// Scale adds a scale filter with explicit dimensions
func (fb *FilterBuilder) Scale(width, height int) *FilterBuilder {
	if width <= 0 || height <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("scale=%d:%d", width, height))
	return fb
}

// ScaleWidth adds a scale filter to a target width, keeping the aspect
// ratio and rounding the height to an even value for yuv420p output.
func (fb *FilterBuilder) ScaleWidth(width int) *FilterBuilder {
	if width <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("scale=%d:-2", width))
	return fb
}

// ChromaKey adds a chromakey filter removing the given color.
// Similarity controls the color-distance threshold, blend the edge feather.
func (fb *FilterBuilder) ChromaKey(color string, similarity, blend float64) *FilterBuilder {
	if color == "" {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("chromakey=%s:%.2f:%.2f", color, similarity, blend))
	return fb
}

// FPS adds an fps filter
func (fb *FilterBuilder) FPS(fps float64) *FilterBuilder {
	if fps <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fps=%f", fps))
	return fb
}

// Build returns the complete filter string joined with commas
func (fb *FilterBuilder) Build() string {
	if len(fb.filters) == 0 {
		return ""
	}
	return strings.Join(fb.filters, ",")
}
