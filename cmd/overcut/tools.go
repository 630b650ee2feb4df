package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keagan/overcut/internal/config"
	"github.com/keagan/overcut/internal/ffmpeg"
	"github.com/keagan/overcut/pkg/util"
)

var probeCmd = &cobra.Command{
	Use:   "probe [media file]",
	Short: "Print media metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}

		info, err := exec.ProbeVideo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("duration:     %s\n", util.FormatDuration(info.Duration))
		fmt.Printf("resolution:   %dx%d @ %.2f fps\n", info.Width, info.Height, info.FPS)
		fmt.Printf("video codec:  %s\n", info.VideoCodec)
		if info.HasAudio {
			fmt.Printf("audio codec:  %s\n", info.AudioCodec)
		} else {
			fmt.Println("audio codec:  none")
		}
		return nil
	},
}

var loopDuration string

var loopCmd = &cobra.Command{
	Use:   "loop [input] [output]",
	Short: "Losslessly loop a clip to a target duration",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		target, err := util.ParseTimestamp(loopDuration)
		if err != nil {
			return fmt.Errorf("invalid --duration: %w", err)
		}

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}

		return exec.Loop(cmd.Context(), args[0], ffmpeg.LoopOptions{
			TargetDuration: target,
			Output:         args[1],
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify external tool availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		opts := ffmpeg.Options{
			BinaryPath: cfg.FFmpeg.BinaryPath,
			ProbePath:  cfg.FFmpeg.ProbePath,
		}

		if err := ffmpeg.CheckBinaries(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Println("ffmpeg:  ok")
		fmt.Println("ffprobe: ok")

		exec, err := newExecutor(cfg)
		if err != nil {
			return err
		}
		if exec.DetectNVENC(cmd.Context()) {
			fmt.Println("nvenc:   available")
		} else {
			fmt.Println("nvenc:   not available (software encoding only)")
		}
		return nil
	},
}

func init() {
	loopCmd.Flags().StringVar(&loopDuration, "duration", "", "target duration (seconds or HH:MM:SS)")
	_ = loopCmd.MarkFlagRequired("duration")
}
