package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/keagan/overcut/pkg/util"
)

// LoopOptions defines loop-to-duration parameters
type LoopOptions struct {
	TargetDuration time.Duration
	Output         string
	ManifestPath   string
	ProgressFunc   ProgressFunc
}

// Loop repeats the input losslessly until it covers TargetDuration, then
// trims the tail with a stream copy. An input already long enough is cut
// down instead.
func (e *Executor) Loop(ctx context.Context, input string, opts LoopOptions) error {
	if opts.TargetDuration <= 0 {
		return fmt.Errorf("target duration must be positive")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	inputDur, err := e.Duration(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to probe loop input: %w", err)
	}

	if opts.TargetDuration <= inputDur {
		return e.ExtractClip(ctx, input, ClipOptions{
			Start:        0,
			End:          opts.TargetDuration,
			Output:       opts.Output,
			CopyCodec:    true,
			ProgressFunc: opts.ProgressFunc,
		})
	}

	repeats := int(opts.TargetDuration/inputDur) + 1

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Dur("target", opts.TargetDuration).
		Int("repeats", repeats).
		Msg("looping video")

	manifest := opts.ManifestPath
	if manifest == "" {
		tmp, err := os.CreateTemp("", "overcut-loop-*.txt")
		if err != nil {
			return fmt.Errorf("failed to create loop manifest: %w", err)
		}
		manifest = tmp.Name()
		tmp.Close()
		defer os.Remove(manifest)
	}

	inputs := make([]string, repeats)
	for i := range inputs {
		inputs[i] = input
	}
	if err := WriteConcatManifest(manifest, inputs); err != nil {
		return fmt.Errorf("failed to write loop manifest: %w", err)
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-t", util.FormatDuration(opts.TargetDuration),
		"-c", "copy",
		opts.Output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("looping")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("video looping failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("loop complete")
	return nil
}
