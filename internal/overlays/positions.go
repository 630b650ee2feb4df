package overlays

// Position names one of the nine overlay anchor points.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	MiddleLeft   Position = "middle-left"
	Center       Position = "center"
	MiddleRight  Position = "middle-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// DefaultPositions returns the anchor-to-offset expression table for the
// ffmpeg overlay filter. Edge anchors keep a 20px margin; center has none.
func DefaultPositions() map[Position]string {
	return map[Position]string{
		TopLeft:      "20:20",
		TopCenter:    "(main_w-overlay_w)/2:20",
		TopRight:     "main_w-overlay_w-20:20",
		MiddleLeft:   "20:(main_h-overlay_h)/2",
		Center:       "(main_w-overlay_w)/2:(main_h-overlay_h)/2",
		MiddleRight:  "main_w-overlay_w-20:(main_h-overlay_h)/2",
		BottomLeft:   "20:main_h-overlay_h-20",
		BottomCenter: "(main_w-overlay_w)/2:main_h-overlay_h-20",
		BottomRight:  "main_w-overlay_w-20:main_h-overlay_h-20",
	}
}
