package overlays

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/keagan/overcut/internal/ffmpeg"
)

// Transcoder is the slice of the ffmpeg executor the compositor needs.
type Transcoder interface {
	Run(ctx context.Context, opts ffmpeg.RunOptions) error
	ProbeVideo(ctx context.Context, path string) (*ffmpeg.VideoInfo, error)
}

// CompositorConfig carries the injected tool tables and encoder settings.
type CompositorConfig struct {
	UseGPU        bool
	AudioBitrate  string
	DefaultPreset string
	Presets       map[string]Preset
	Positions     map[Position]string
}

// Compositor produces one encoded video from a target and an overlay clip.
type Compositor struct {
	logger zerolog.Logger
	tool   Transcoder
	cfg    CompositorConfig
}

// NewCompositor creates a compositor, filling missing tables with the
// built-in defaults.
func NewCompositor(logger zerolog.Logger, tool Transcoder, cfg CompositorConfig) *Compositor {
	if cfg.Presets == nil {
		cfg.Presets = DefaultPresets()
	}
	if cfg.Positions == nil {
		cfg.Positions = DefaultPositions()
	}
	if cfg.AudioBitrate == "" {
		cfg.AudioBitrate = "192k"
	}
	if cfg.DefaultPreset == "" {
		cfg.DefaultPreset = "fast"
	}
	return &Compositor{
		logger: logger.With().Str("component", "compositor").Logger(),
		tool:   tool,
		cfg:    cfg,
	}
}

// CompositeInput describes one composite operation. GateStart/GateEnd are
// in the target's own timeline: for a pre-cut overlay segment that is
// [0, segment duration); for a full video it is the resolved window.
type CompositeInput struct {
	TargetPath  string
	OverlayPath string
	OutputPath  string

	GateStart time.Duration
	GateEnd   time.Duration

	Position    Position
	SizePercent float64
	Chroma      ChromaKey

	KeepOverlayAudio bool
	Preset           string

	ProgressFunc ffmpeg.ProgressFunc
}

// Composite scales (and optionally keys) the overlay, composites it onto
// the target at the anchor position gated to the visibility window, and
// re-encodes with the preset's encoder tier.
func (c *Compositor) Composite(ctx context.Context, in CompositeInput) error {
	info, err := c.tool.ProbeVideo(ctx, in.TargetPath)
	if err != nil {
		return fmt.Errorf("failed to probe composite target: %w", err)
	}
	if info.Width <= 0 {
		return fmt.Errorf("composite target %s has no video stream", in.TargetPath)
	}

	posExpr, ok := c.cfg.Positions[in.Position]
	if !ok {
		return fmt.Errorf("unknown overlay position %q", in.Position)
	}

	presetName := in.Preset
	if presetName == "" {
		presetName = c.cfg.DefaultPreset
	}
	preset, ok := c.cfg.Presets[presetName]
	if !ok {
		return fmt.Errorf("unknown quality preset %q", presetName)
	}

	graph := Graph{
		OverlayWidth: evenWidth(float64(info.Width) * in.SizePercent / 100),
		Chroma:       in.Chroma,
		PositionExpr: posExpr,
		GateStart:    in.GateStart,
		GateEnd:      in.GateEnd,
		MixAudio:     in.KeepOverlayAudio,
	}

	filterExpr, err := graph.Build()
	if err != nil {
		return fmt.Errorf("invalid overlay graph: %w", err)
	}

	c.logger.Info().
		Str("target", in.TargetPath).
		Str("overlay", in.OverlayPath).
		Str("output", in.OutputPath).
		Str("position", string(in.Position)).
		Str("preset", presetName).
		Bool("gpu", c.cfg.UseGPU).
		Bool("chroma_key", in.Chroma.Enabled).
		Msg("compositing overlay")

	args := []string{
		"-i", in.TargetPath,
		"-i", in.OverlayPath,
		"-filter_complex", filterExpr,
	}
	args = append(args, graph.MapArgs()...)
	args = append(args, c.encoderArgs(preset)...)
	args = append(args, "-c:a", "aac", "-b:a", c.cfg.AudioBitrate)
	args = append(args, in.OutputPath)

	runOpts := ffmpeg.RunOptions{
		Args:            args,
		ProgressHandler: in.ProgressFunc,
		LogHandler: func(line string) {
			c.logger.Debug().Str("ffmpeg", line).Msg("compositing")
		},
	}

	if err := c.tool.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("overlay composition failed: %w", err)
	}

	c.logger.Info().Str("output", in.OutputPath).Msg("composite complete")
	return nil
}

func (c *Compositor) encoderArgs(p Preset) []string {
	if c.cfg.UseGPU {
		return []string{
			"-c:v", "h264_nvenc",
			"-preset", p.NvencPreset,
			"-rc", "vbr",
			"-cq", fmt.Sprintf("%d", p.NvencCQ),
		}
	}
	return []string{
		"-c:v", ffmpeg.DefaultVideoCodec,
		"-preset", p.X264Preset,
		"-crf", fmt.Sprintf("%d", p.CRF),
	}
}

// evenWidth rounds down to an even pixel count, the minimum being 2.
func evenWidth(w float64) int {
	n := int(w)
	n -= n % 2
	if n < 2 {
		n = 2
	}
	return n
}
