package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CheckBinaries verifies that the configured ffmpeg and ffprobe binaries
// can be located and executed.
func CheckBinaries(ctx context.Context, opts Options) error {
	binary := opts.BinaryPath
	if binary == "" {
		binary = "ffmpeg"
	}
	probe := opts.ProbePath
	if probe == "" {
		probe = "ffprobe"
	}

	for _, name := range []string{binary, probe} {
		path, err := exec.LookPath(name)
		if err != nil {
			return fmt.Errorf("%s not found in PATH: %w", name, err)
		}

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = exec.CommandContext(checkCtx, path, "-version").Run()
		cancel()
		if err != nil {
			return fmt.Errorf("%s is not runnable: %w", name, err)
		}
	}

	return nil
}

// DetectNVENC reports whether the ffmpeg build exposes the h264_nvenc
// hardware encoder. Detection failures count as unavailable.
func (e *Executor) DetectNVENC(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(checkCtx, e.ffmpegPath, "-hide_banner", "-encoders")
	output, err := cmd.Output()
	if err != nil {
		e.logger.Debug().Err(err).Msg("encoder detection failed")
		return false
	}

	return strings.Contains(string(output), "h264_nvenc")
}
