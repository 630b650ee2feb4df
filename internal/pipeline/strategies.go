package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/keagan/overcut/internal/ffmpeg"
	"github.com/keagan/overcut/internal/overlays"
)

// strategy is one execution path for a request. The selector picks a
// variant once; neither variant falls back to the other.
type strategy interface {
	execute(ctx context.Context, j *job) error
}

// standardStrategy re-encodes the whole main video, gating the overlay
// to the resolved window in the main timeline.
type standardStrategy struct{}

func (standardStrategy) execute(ctx context.Context, j *job) error {
	return j.engine.composite(ctx, overlays.CompositeInput{
		TargetPath:       j.req.MainPath,
		OverlayPath:      j.req.OverlayPath,
		OutputPath:       j.req.OutputPath,
		GateStart:        j.win.Start,
		GateEnd:          j.win.End,
		Position:         j.req.Position,
		SizePercent:      j.req.SizePercent,
		Chroma:           j.req.Chroma,
		KeepOverlayAudio: j.req.KeepOverlayAudio,
		Preset:           j.req.Preset,
	})
}

// optimizedStrategy cuts the untouched before/after spans losslessly,
// re-encodes only the pre-cut overlay segment and reassembles the pieces
// with a lossless concat.
type optimizedStrategy struct{}

func (optimizedStrategy) execute(ctx context.Context, j *job) error {
	segments := overlays.PlanSegments(j.win, j.mainDur)

	cuts := make(map[overlays.SegmentKind]string, len(segments))
	for _, seg := range segments {
		out := j.ws.Path(fmt.Sprintf("segment_%s.mp4", seg.Kind))

		j.logger.Debug().
			Stringer("kind", seg.Kind).
			Dur("start", seg.Start).
			Dur("end", seg.End).
			Msg("extracting segment")

		err := j.engine.cutter.ExtractClip(ctx, j.req.MainPath, ffmpeg.ClipOptions{
			Start:     seg.Start,
			End:       seg.End,
			Output:    out,
			CopyCodec: true,
		})
		if err != nil {
			if errors.Is(err, ffmpeg.ErrTimeout) {
				return &TimeoutError{At: "extract", Err: err}
			}
			return &SegmentExtractionError{Kind: seg.Kind, Err: err}
		}
		cuts[seg.Kind] = out
	}

	// The compositor consumes the pre-cut overlay segment, never the
	// full main video, so the re-encode covers only the overlapped
	// window. The gate spans the segment's whole local timeline.
	composed := j.ws.Path("segment_overlay_composed.mp4")
	err := j.engine.composite(ctx, overlays.CompositeInput{
		TargetPath:       cuts[overlays.SegmentOverlay],
		OverlayPath:      j.req.OverlayPath,
		OutputPath:       composed,
		GateStart:        0,
		GateEnd:          j.win.SegmentDuration(),
		Position:         j.req.Position,
		SizePercent:      j.req.SizePercent,
		Chroma:           j.req.Chroma,
		KeepOverlayAudio: j.req.KeepOverlayAudio,
		Preset:           j.req.Preset,
	})
	if err != nil {
		return err
	}

	// segments is already in reassembly order: before, overlay, after.
	inputs := lo.Map(segments, func(seg overlays.Segment, _ int) string {
		if seg.Kind == overlays.SegmentOverlay {
			return composed
		}
		return cuts[seg.Kind]
	})

	err = j.engine.concat.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs:       inputs,
		Output:       j.req.OutputPath,
		ManifestPath: j.ws.Path("concat_manifest.txt"),
	})
	if err != nil {
		if errors.Is(err, ffmpeg.ErrTimeout) {
			return &TimeoutError{At: "concat", Err: err}
		}
		return &ConcatenationError{Err: err}
	}

	return nil
}
