package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keagan/overcut/internal/config"
	"github.com/keagan/overcut/internal/overlays"
	"github.com/keagan/overcut/pkg/util"
)

var applyFlags struct {
	mode        string
	start       string
	end         string
	position    string
	sizePercent float64
	noChroma    bool
	chromaColor string
	similarity  float64
	blend       float64
	keepAudio   bool
	preset      string
	noOptimize  bool
}

var applyCmd = &cobra.Command{
	Use:   "apply [main video] [overlay video] [output]",
	Short: "Composite an overlay clip onto a video",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		req, err := buildRequest(cmd, cfg, args[0], args[1], args[2])
		if err != nil {
			return err
		}

		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		return engine.Apply(cmd.Context(), req)
	},
}

func init() {
	f := applyCmd.Flags()
	f.StringVar(&applyFlags.mode, "mode", "range", "timing mode: full, range or native")
	f.StringVar(&applyFlags.start, "start", "0", "overlay start (seconds or HH:MM:SS)")
	f.StringVar(&applyFlags.end, "end", "", "overlay end for range mode (seconds or HH:MM:SS)")
	f.StringVar(&applyFlags.position, "position", "", "anchor position (default from config)")
	f.Float64Var(&applyFlags.sizePercent, "size", 0, "overlay width as percent of main width (default from config)")
	f.BoolVar(&applyFlags.noChroma, "no-chroma", false, "keep the overlay background instead of keying it out")
	f.StringVar(&applyFlags.chromaColor, "chroma-color", "", "chroma key color (default from config)")
	f.Float64Var(&applyFlags.similarity, "similarity", 0, "chroma color-distance threshold (default from config)")
	f.Float64Var(&applyFlags.blend, "blend", -1, "chroma edge feather width (default from config)")
	f.BoolVar(&applyFlags.keepAudio, "keep-overlay-audio", false, "mix the overlay's audio into the main track")
	f.StringVar(&applyFlags.preset, "preset", "", "quality preset (default from config)")
	f.BoolVar(&applyFlags.noOptimize, "no-optimize", false, "force the full re-encode path")
}

// buildRequest merges flags over config defaults into an overlay request.
func buildRequest(cmd *cobra.Command, cfg *config.Config, main, overlay, output string) (overlays.Request, error) {
	var req overlays.Request

	if !util.FileExists(main) {
		return req, fmt.Errorf("main video not found: %s", main)
	}
	if !util.FileExists(overlay) {
		return req, fmt.Errorf("overlay video not found: %s", overlay)
	}

	mode, err := overlays.ParseTimingMode(applyFlags.mode)
	if err != nil {
		return req, err
	}

	start, err := util.ParseTimestamp(applyFlags.start)
	if err != nil {
		return req, fmt.Errorf("invalid --start: %w", err)
	}

	req = overlays.Request{
		MainPath:            main,
		OverlayPath:         overlay,
		OutputPath:          output,
		Mode:                mode,
		RangeStart:          start,
		Position:            overlays.Position(cfg.Overlay.Position),
		SizePercent:         cfg.Overlay.SizePercent,
		KeepOverlayAudio:    applyFlags.keepAudio,
		Preset:              applyFlags.preset,
		DisableOptimization: applyFlags.noOptimize,
		Chroma: overlays.ChromaKey{
			Enabled:    !applyFlags.noChroma,
			Color:      cfg.Overlay.ChromaColor,
			Similarity: cfg.Overlay.Similarity,
			Blend:      cfg.Overlay.Blend,
		},
	}

	if applyFlags.end != "" {
		end, err := util.ParseTimestamp(applyFlags.end)
		if err != nil {
			return req, fmt.Errorf("invalid --end: %w", err)
		}
		req.RangeEnd = end
	}

	if cmd.Flags().Changed("position") {
		req.Position = overlays.Position(applyFlags.position)
	}
	if cmd.Flags().Changed("size") {
		req.SizePercent = applyFlags.sizePercent
	}
	if cmd.Flags().Changed("chroma-color") {
		req.Chroma.Color = applyFlags.chromaColor
	}
	if cmd.Flags().Changed("similarity") {
		req.Chroma.Similarity = applyFlags.similarity
	}
	if cmd.Flags().Changed("blend") {
		req.Chroma.Blend = applyFlags.blend
	}

	return req, nil
}
