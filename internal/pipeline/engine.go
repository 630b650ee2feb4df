package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/keagan/overcut/internal/config"
	"github.com/keagan/overcut/internal/ffmpeg"
	"github.com/keagan/overcut/internal/overlays"
	"github.com/keagan/overcut/internal/workspace"
)

// Prober inspects a media file.
type Prober interface {
	ProbeVideo(ctx context.Context, path string) (*ffmpeg.VideoInfo, error)
}

// Cutter performs temporal cuts.
type Cutter interface {
	ExtractClip(ctx context.Context, input string, opts ffmpeg.ClipOptions) error
}

// Concatenator joins segments losslessly.
type Concatenator interface {
	Concat(ctx context.Context, opts ffmpeg.ConcatOptions) error
}

// Compositor applies an overlay onto a target.
type Compositor interface {
	Composite(ctx context.Context, in overlays.CompositeInput) error
}

// Engine executes overlay assembly requests.
type Engine struct {
	logger zerolog.Logger

	tempDir     string
	concurrency int

	prober     Prober
	cutter     Cutter
	concat     Concatenator
	compositor Compositor

	// encodeSem caps concurrent compositor invocations: hardware encode
	// sessions are a shared finite resource and oversubscription fails
	// inside the tool.
	encodeSem *semaphore.Weighted
}

// NewEngine wires an engine onto a real ffmpeg executor using the
// application configuration.
func NewEngine(logger zerolog.Logger, cfg *config.Config, exec *ffmpeg.Executor) *Engine {
	compositor := overlays.NewCompositor(logger, exec, overlays.CompositorConfig{
		UseGPU:        cfg.Encode.UseGPU,
		AudioBitrate:  cfg.Encode.AudioBitrate,
		DefaultPreset: cfg.Encode.DefaultPreset,
		Presets:       cfg.Encode.Presets,
	})

	sessions := cfg.EncodeSessions
	if sessions < 1 {
		sessions = 1
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Engine{
		logger:      logger.With().Str("component", "engine").Logger(),
		tempDir:     cfg.TempDir,
		concurrency: concurrency,
		prober:      exec,
		cutter:      exec,
		concat:      exec,
		compositor:  compositor,
		encodeSem:   semaphore.NewWeighted(int64(sessions)),
	}
}

// job carries the per-request state shared between the engine and the
// chosen strategy.
type job struct {
	engine  *Engine
	logger  zerolog.Logger
	req     overlays.Request
	win     overlays.Window
	mainDur time.Duration
	ws      *workspace.Workspace
}

// Apply runs one overlay assembly request to completion. Intermediate
// files are removed on every exit path; the final output is owned by the
// caller once written.
func (e *Engine) Apply(ctx context.Context, req overlays.Request) error {
	logger := e.logger.With().
		Str("main", req.MainPath).
		Str("overlay", req.OverlayPath).
		Str("output", req.OutputPath).
		Logger()

	if err := req.Validate(); err != nil {
		return &InvalidTimingError{Err: err}
	}

	mainInfo, err := e.prober.ProbeVideo(ctx, req.MainPath)
	if err != nil {
		return &ProbeError{Path: req.MainPath, Err: err}
	}
	if mainInfo.Duration <= 0 {
		return &ProbeError{Path: req.MainPath, Err: fmt.Errorf("no parsable duration")}
	}

	overlayInfo, err := e.prober.ProbeVideo(ctx, req.OverlayPath)
	if err != nil {
		return &ProbeError{Path: req.OverlayPath, Err: err}
	}
	if overlayInfo.Duration <= 0 {
		return &ProbeError{Path: req.OverlayPath, Err: fmt.Errorf("no parsable duration")}
	}

	win, err := overlays.ResolveWindow(req, mainInfo.Duration, overlayInfo.Duration)
	if err != nil {
		return &InvalidTimingError{Err: err}
	}

	strat := overlays.ChooseStrategy(win, mainInfo.Duration, !req.DisableOptimization)

	logger.Info().
		Stringer("window", win).
		Dur("segment_duration", win.SegmentDuration()).
		Dur("main_duration", mainInfo.Duration).
		Stringer("strategy", strat).
		Msg("executing overlay request")

	ws, err := workspace.New(logger, e.tempDir)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	defer ws.Cleanup()

	j := &job{
		engine:  e,
		logger:  logger,
		req:     req,
		win:     win,
		mainDur: mainInfo.Duration,
		ws:      ws,
	}

	var path strategy
	if strat == overlays.StrategyOptimized {
		path = optimizedStrategy{}
	} else {
		path = standardStrategy{}
	}

	if err := path.execute(ctx, j); err != nil {
		return err
	}

	logger.Info().Str("output", req.OutputPath).Msg("overlay request complete")
	return nil
}

// composite runs one compositor invocation while holding an encode
// session.
func (e *Engine) composite(ctx context.Context, in overlays.CompositeInput) error {
	if err := e.encodeSem.Acquire(ctx, 1); err != nil {
		return &CompositionError{Err: err}
	}
	defer e.encodeSem.Release(1)

	if err := e.compositor.Composite(ctx, in); err != nil {
		if errors.Is(err, ffmpeg.ErrTimeout) {
			return &TimeoutError{At: "compose", Err: err}
		}
		return &CompositionError{Err: err}
	}
	return nil
}
