package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/overcut/internal/config"
	"github.com/keagan/overcut/internal/ffmpeg"
	"github.com/keagan/overcut/internal/logging"
	"github.com/keagan/overcut/internal/pipeline"
	"github.com/keagan/overcut/pkg/util"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "overcut",
	Short: "overcut - overlay assembly engine",
	Long: "Composites an overlay clip onto a video for a bounded time window,\n" +
		"removing a chroma-key background when asked, and re-encodes only the\n" +
		"overlapped segment when that is cheaper than a full re-encode.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(checkCmd)
}

// newExecutor builds the ffmpeg executor from configuration.
func newExecutor(cfg *config.Config) (*ffmpeg.Executor, error) {
	return ffmpeg.New(log.Logger, ffmpeg.Options{
		BinaryPath: cfg.FFmpeg.BinaryPath,
		ProbePath:  cfg.FFmpeg.ProbePath,
		Threads:    cfg.FFmpeg.Threads,
		Timeout:    time.Duration(cfg.FFmpeg.TimeoutMinutes) * time.Minute,
	})
}

// newEngine builds the assembly engine from configuration.
func newEngine(cfg *config.Config) (*pipeline.Engine, error) {
	if err := util.EnsureDir(cfg.TempDir); err != nil {
		return nil, err
	}
	exec, err := newExecutor(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewEngine(log.Logger, cfg, exec), nil
}
