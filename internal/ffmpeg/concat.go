package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConcatOptions defines concatenation parameters
type ConcatOptions struct {
	Inputs []string
	Output string

	// ManifestPath receives the concat file list. When empty a temporary
	// file is used and removed after the run; when set the caller owns
	// the manifest's lifetime.
	ManifestPath string

	ProgressFunc ProgressFunc
}

// Concat joins the input files into one output via a lossless stream copy.
// All inputs must share compatible codec parameters; the concat demuxer
// cannot repair a mismatch.
func (e *Executor) Concat(ctx context.Context, opts ConcatOptions) error {
	if len(opts.Inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}

	e.logger.Info().
		Int("inputs", len(opts.Inputs)).
		Str("output", opts.Output).
		Msg("concatenating videos")

	manifest := opts.ManifestPath
	if manifest == "" {
		tmp, err := os.CreateTemp("", "overcut-concat-*.txt")
		if err != nil {
			return fmt.Errorf("failed to create concat manifest: %w", err)
		}
		manifest = tmp.Name()
		tmp.Close()
		defer os.Remove(manifest)
	}

	if err := WriteConcatManifest(manifest, opts.Inputs); err != nil {
		return fmt.Errorf("failed to write concat manifest: %w", err)
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		opts.Output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("concatenating")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("concatenation failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("concatenation complete")
	return nil
}

// WriteConcatManifest writes a concat demuxer file list with absolute paths.
func WriteConcatManifest(path string, inputs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, input := range inputs {
		absPath, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", absPath); err != nil {
			return err
		}
	}

	return nil
}
