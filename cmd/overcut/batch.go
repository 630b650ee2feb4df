package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/keagan/overcut/internal/config"
	"github.com/keagan/overcut/internal/overlays"
	"github.com/keagan/overcut/internal/pipeline"
	"github.com/keagan/overcut/pkg/util"
)

// batchManifest is the yaml job file consumed by `overcut batch`.
type batchManifest struct {
	Jobs []batchJob `yaml:"jobs"`
}

type batchJob struct {
	ID      string `yaml:"id"`
	Main    string `yaml:"main"`
	Overlay string `yaml:"overlay"`
	Output  string `yaml:"output"`

	Mode  string `yaml:"mode"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`

	Position    string  `yaml:"position"`
	SizePercent float64 `yaml:"size_percent"`

	ChromaKey  *bool   `yaml:"chroma_key"`
	Color      string  `yaml:"chroma_color"`
	Similarity float64 `yaml:"similarity"`
	Blend      float64 `yaml:"blend"`

	KeepOverlayAudio bool   `yaml:"keep_overlay_audio"`
	Preset           string `yaml:"preset"`
	NoOptimize       bool   `yaml:"no_optimize"`
}

var batchCmd = &cobra.Command{
	Use:   "batch [manifest file]",
	Short: "Run a yaml manifest of overlay jobs",
	Long: "Runs every job in the manifest through a bounded worker pool.\n" +
		"A failed job is reported and the batch continues with the rest.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var manifest batchManifest
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return fmt.Errorf("invalid batch manifest: %w", err)
		}
		if len(manifest.Jobs) == 0 {
			return fmt.Errorf("batch manifest has no jobs")
		}

		jobs := make([]pipeline.Job, 0, len(manifest.Jobs))
		for i, entry := range manifest.Jobs {
			req, err := entry.toRequest(cfg)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i+1, entry.ID, err)
			}
			jobs = append(jobs, pipeline.Job{ID: entry.ID, Request: req})
		}

		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		results := engine.Batch(cmd.Context(), jobs)

		failed := lo.Filter(results, func(r pipeline.Result, _ int) bool {
			return r.Failed()
		})
		for _, r := range failed {
			evt := log.Error().Str("job", r.ID).Err(r.Err)
			var stageErr pipeline.StageError
			if errors.As(r.Err, &stageErr) {
				evt = evt.Str("stage", stageErr.Stage())
			}
			evt.Msg("job failed")
		}

		if len(failed) > 0 {
			return fmt.Errorf("%d of %d jobs failed", len(failed), len(results))
		}
		return nil
	},
}

// toRequest merges a manifest entry over config defaults.
func (j batchJob) toRequest(cfg *config.Config) (overlays.Request, error) {
	var req overlays.Request

	modeName := j.Mode
	if modeName == "" {
		modeName = "range"
	}
	mode, err := overlays.ParseTimingMode(modeName)
	if err != nil {
		return req, err
	}

	req = overlays.Request{
		MainPath:            j.Main,
		OverlayPath:         j.Overlay,
		OutputPath:          j.Output,
		Mode:                mode,
		Position:            overlays.Position(cfg.Overlay.Position),
		SizePercent:         cfg.Overlay.SizePercent,
		KeepOverlayAudio:    j.KeepOverlayAudio,
		Preset:              j.Preset,
		DisableOptimization: j.NoOptimize,
		Chroma: overlays.ChromaKey{
			Enabled:    j.ChromaKey == nil || *j.ChromaKey,
			Color:      cfg.Overlay.ChromaColor,
			Similarity: cfg.Overlay.Similarity,
			Blend:      cfg.Overlay.Blend,
		},
	}

	if j.Start != "" {
		d, err := util.ParseTimestamp(j.Start)
		if err != nil {
			return req, fmt.Errorf("invalid start: %w", err)
		}
		req.RangeStart = d
	}
	if j.End != "" {
		d, err := util.ParseTimestamp(j.End)
		if err != nil {
			return req, fmt.Errorf("invalid end: %w", err)
		}
		req.RangeEnd = d
	}

	if j.Position != "" {
		req.Position = overlays.Position(j.Position)
	}
	if j.SizePercent > 0 {
		req.SizePercent = j.SizePercent
	}
	if j.Color != "" {
		req.Chroma.Color = j.Color
	}
	if j.Similarity > 0 {
		req.Chroma.Similarity = j.Similarity
	}
	if j.Blend > 0 {
		req.Chroma.Blend = j.Blend
	}

	return req, nil
}
